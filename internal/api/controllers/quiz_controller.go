package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"yogafunnel/internal/models/request_models"
	"yogafunnel/internal/quiz"
	"yogafunnel/internal/services"
	"yogafunnel/pkg/utils"
)

type QuizController struct {
	quizService services.QuizServiceInterface
	planService services.PlanServiceInterface
}

func NewQuizController(quizService services.QuizServiceInterface, planService services.PlanServiceInterface) *QuizController {
	return &QuizController{
		quizService: quizService,
		planService: planService,
	}
}

// StartSession godoc
// @Summary Start a quiz session
// @Tags Quiz
// @Produce json
// @Success 200 {object} response_models.QuizSessionResponse
// @Router /quiz/sessions [post]
func (qc *QuizController) StartSession(c *gin.Context) {
	utils.RespondSuccess(c, qc.quizService.StartSession(), "Quiz session started")
}

// GetSession godoc
// @Summary Get the answers and current step of a session
// @Tags Quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.QuizSessionResponse
// @Router /quiz/sessions/{sessionId} [get]
func (qc *QuizController) GetSession(c *gin.Context) {
	resp, err := qc.quizService.GetSession(c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Quiz session fetched")
}

// SelectOption godoc
// @Summary Select an option on a choice step
// @Description Single-choice steps store the answer and advance. Multi-choice steps toggle the option.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param step path string true "Step route name"
// @Param request body request_models.SelectOptionRequest true "Option"
// @Success 200 {object} response_models.StepResult
// @Router /quiz/sessions/{sessionId}/steps/{step}/select [post]
func (qc *QuizController) SelectOption(c *gin.Context) {
	var req request_models.SelectOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := qc.quizService.SelectOption(c.Param("sessionId"), quiz.Step(c.Param("step")), req.Option)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Option applied")
}

// Continue godoc
// @Summary Advance past a step
// @Description A step that is not answered yet reports advanced=false and nothing changes.
// @Tags Quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param step path string true "Step route name"
// @Success 200 {object} response_models.StepResult
// @Router /quiz/sessions/{sessionId}/steps/{step}/continue [post]
func (qc *QuizController) Continue(c *gin.Context) {
	resp, err := qc.quizService.Continue(c.Param("sessionId"), quiz.Step(c.Param("step")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	msg := "Advanced"
	if !resp.Advanced {
		msg = "Step is not complete"
	}
	utils.RespondSuccess(c, resp, msg)
}

func (qc *QuizController) PeekNext(c *gin.Context) {
	resp, err := qc.quizService.PeekNext(c.Param("sessionId"), quiz.Step(c.Param("step")))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "")
}

// SetBMI godoc
// @Summary Store the body mass index
// @Tags Quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body request_models.BMIRequest true "BMI or height and weight"
// @Success 200 {object} response_models.BMIResponse
// @Router /quiz/sessions/{sessionId}/bmi [post]
func (qc *QuizController) SetBMI(c *gin.Context) {
	var req request_models.BMIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := qc.quizService.SetBMI(c.Param("sessionId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "BMI processed")
}

// CaptureEmail godoc
// @Summary Leave an email to receive the plan
// @Tags Quiz
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body request_models.EmailCaptureRequest true "Email"
// @Success 200 {object} response_models.EmailCaptureResponse
// @Router /quiz/sessions/{sessionId}/email [post]
func (qc *QuizController) CaptureEmail(c *gin.Context) {
	var req request_models.EmailCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := qc.quizService.CaptureEmail(c.Param("sessionId"), req.Email)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Email processed")
}

func (qc *QuizController) ChoosePlan(c *gin.Context) {
	var req request_models.PlanChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := qc.quizService.ChoosePlan(c.Param("sessionId"), req.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Plan selected")
}

// Summary godoc
// @Summary Personalized plan summary for the results and sales screens
// @Tags Quiz
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} response_models.PlanSummary
// @Router /quiz/sessions/{sessionId}/summary [get]
func (qc *QuizController) Summary(c *gin.Context) {
	resp, err := qc.quizService.Summary(c.Param("sessionId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Plan summary generated")
}

func (qc *QuizController) ListPlans(c *gin.Context) {
	utils.RespondSuccess(c, qc.planService.SalesPlans(), "")
}
