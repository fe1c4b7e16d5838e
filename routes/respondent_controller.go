package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"formflow-server/app"
	"formflow-server/database"
	"formflow-server/httpx"
	"formflow-server/log"
	"formflow-server/model"
	"formflow-server/renderer"
)

// loadForm fetches the persisted form for respondent-facing handlers,
// bypassing any open editing session: respondents see the last save.
func loadForm(app app.App, w http.ResponseWriter, r *http.Request) (form model.Form, ok bool) {
	formId := chi.URLParam(r, "id")
	form, err := app.Store.Load(r.Context(), formId)
	if errors.Is(err, database.ErrNotFound) {
		httpx.LogNotFound(w, "view_form", formId)
		return form, false
	}
	if err != nil {
		httpx.LogInternalError(w, "db.view_form", err)
		return form, false
	}
	if err := form.Validate(); err != nil {
		httpx.LogStatusMsg(w, http.StatusUnprocessableEntity, log.WarnLevel, "view_form.corrupt", "%s", err)
		return form, false
	}
	return form, true
}

func ViewForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := loadForm(app, w, r)
		if !ok {
			return
		}

		fields := make([]renderer.RenderedField, len(form.Questions))
		for i, q := range form.Questions {
			fields[i] = renderer.Render(q, renderer.RespondentInput, nil)
		}

		render.JSON(w, r, map[string]any{
			"title":           form.Title,
			"description":     form.Description,
			"theme":           form.Settings.Theme,
			"showProgressBar": form.Settings.ShowProgressBar,
			"collectEmail":    form.Settings.CollectEmail,
			"fields":          fields,
		})
	}
}

type answerEvents struct {
	QuestionID string              `json:"questionId"`
	Inputs     []renderer.RawInput `json:"inputs"`
}

type answerProblem struct {
	QuestionID string `json:"questionId"`
	Message    string `json:"message"`
}

// CaptureAnswers folds a batch of raw input events into typed answer
// values, question by question, and reports per-question validation
// problems inline. It is a stateless check: nothing is stored, response
// aggregation is not this server's business.
func CaptureAnswers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Answers []answerEvents `json:"answers"`
		}
		err := render.DecodeJSON(r.Body, &body)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, ok := loadForm(app, w, r)
		if !ok {
			return
		}

		answers := map[string]*renderer.Answer{}
		problems := []answerProblem{}
		for _, a := range body.Answers {
			i := form.QuestionIndex(a.QuestionID)
			if i < 0 {
				// stale question id, ignore
				continue
			}
			q := form.Questions[i]

			current := answers[a.QuestionID]
			for _, in := range a.Inputs {
				next, err := renderer.Capture(q, in, current)
				var rejected *renderer.ValidationError
				if errors.As(err, &rejected) {
					problems = append(problems, answerProblem{
						QuestionID: rejected.QuestionID,
						Message:    rejected.Message,
					})
					continue
				}
				current = next
			}
			if current != nil {
				answers[a.QuestionID] = current
			}
		}

		if len(problems) > 0 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"problems": problems,
			})
			return
		}

		render.JSON(w, r, map[string]any{
			"answers": answers,
		})
	}
}
