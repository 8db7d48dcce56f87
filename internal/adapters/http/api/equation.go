package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/puimuri/trainer/internal/domain/exercise"
)

// maxBodyBytes bounds the exercise body a client may post.
const maxBodyBytes = 64 << 10

// Error codes returned in errorResponse.Code.
const (
	codeBadRequest          = "bad_request"
	codeMissingVariable     = "missing_variable"
	codeUnsupportedExercise = "unsupported_exercise"
	codeNonFiniteAnswer     = "non_finite_answer"
	codeInternal            = "internal_error"
)

// EquationHandler serves exercises and grades answers.
type EquationHandler struct {
	deps Dependencies
}

// NewEquationHandler creates a new equation handler.
func NewEquationHandler(deps Dependencies) *EquationHandler {
	return &EquationHandler{deps: deps}
}

// HandleGetEquation handles GET /api/equation.
func (h *EquationHandler) HandleGetEquation(w http.ResponseWriter, r *http.Request) {
	ex, err := h.deps.NewExercise(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternal, ErrInternal)
		return
	}
	writeJSON(w, http.StatusOK, ex.WithoutAnswer())
}

// HandlePostAnswer handles POST /api/equation/answer/{answer}. The body is
// the exercise as it was served. A correct answer yields 200, a wrong one
// 412; both carry the worked solution.
func (h *EquationHandler) HandlePostAnswer(w http.ResponseWriter, r *http.Request) {
	answer, err := parseAnswer(r.PathValue("answer"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err)
		return
	}

	var ex exercise.Exercise
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&ex); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	result, err := h.deps.Grade(r.Context(), answer, ex)
	if err != nil {
		status, code := classifyError(err)
		if status == http.StatusInternalServerError {
			err = ErrInternal
		}
		writeError(w, status, code, err)
		return
	}

	if result.Correct {
		writeJSON(w, http.StatusOK, result.Solution)
		return
	}
	writeJSON(w, http.StatusPreconditionFailed, result.Solution)
}

func parseAnswer(raw string) (float64, error) {
	answer, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: answer %q is not a number", ErrBadRequest, raw)
	}
	if math.IsInf(answer, 0) || math.IsNaN(answer) {
		return 0, fmt.Errorf("%w: answer %q is not finite", ErrBadRequest, raw)
	}
	return answer, nil
}

// classifyError maps a grading error to a status code and error code.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, exercise.ErrMissingVariable):
		return http.StatusBadRequest, codeMissingVariable
	case errors.Is(err, exercise.ErrUnsupportedExercise):
		return http.StatusBadRequest, codeUnsupportedExercise
	case errors.Is(err, exercise.ErrNonFiniteAnswer):
		return http.StatusUnprocessableEntity, codeNonFiniteAnswer
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
