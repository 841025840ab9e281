package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/dto"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/models"
	"github.com/Om-Rajpure/Advance-Timetable-Generator/internal/service"
)

// jsonContext builds a test context carrying a JSON request body.
func jsonContext(t *testing.T, w *httptest.ResponseRecorder, method, target string, payload interface{}) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(w)
	var body []byte
	switch v := payload.(type) {
	case nil:
	case []byte:
		body = v
	default:
		var err error
		body, err = json.Marshal(v)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func testGenerationService() *service.GenerationService {
	return service.NewGenerationService(nil, nil, nil, nil, service.GenerationConfig{
		MaxIterations:      10000,
		OptimizerPasses:    50,
		OptimizerPatience:  10,
		MaxDailyLectures:   7,
		TeacherDailyCap:    4,
		TeacherWeeklyCap:   25,
		TheorySlack:        2,
		MinWorkingDays:     5,
		OptimizerByDefault: true,
	})
}

func handlerGenerationRequest() dto.GenerateTimetableRequest {
	recess := 3
	return dto.GenerateTimetableRequest{
		Branch: models.BranchConfig{
			BranchID:      "comp",
			AcademicYears: []string{"SE"},
			Divisions:     map[string][]string{"SE": {"A"}},
			WorkingDays:   []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
			SlotsPerDay:   7,
			RecessSlot:    &recess,
			Classrooms:    map[string][]string{"SE": {"R101", "R102"}},
			SharedLabs: []models.SharedLab{
				{Name: "L1"},
				{Name: "L2"},
			},
			LabBatchesPerYear: map[string]int{"SE": 2},
		},
		Curriculum: models.Curriculum{
			Subjects: []models.Subject{
				{Name: "Mathematics", Year: "SE", WeeklySessions: 4},
				{Name: "Physics", Year: "SE", WeeklySessions: 3},
				{Name: "PhysicsLab", Year: "SE", WeeklySessions: 1, IsPractical: true},
				{Name: "ChemLab", Year: "SE", WeeklySessions: 1, IsPractical: true},
			},
			Teachers: []models.Teacher{
				{Name: "Sharma", Subjects: []string{"Mathematics"}},
				{Name: "Iyer", Subjects: []string{"Physics"}},
				{Name: "Rao", Subjects: []string{"PhysicsLab", "ChemLab"}},
			},
			Assignments: []models.SubjectAssignment{
				{Subject: "Mathematics", Teacher: "Sharma"},
				{Subject: "Physics", Teacher: "Iyer"},
			},
		},
	}
}

func TestGenerationHandlerGenerateReturnsTimetable(t *testing.T) {
	handler := NewGenerationHandler(testGenerationService())
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/generate", handlerGenerationRequest())

	handler.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.GenerateTimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.Success)
	assert.NotEmpty(t, envelope.Data.Slots)
	assert.Contains(t, envelope.Data.Timetable, "SE")
}

func TestGenerationHandlerGenerateRejectsInvalidBody(t *testing.T) {
	handler := NewGenerationHandler(testGenerationService())
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/generate", []byte(`not json`))

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandlerGenerateInfeasibleReturns422(t *testing.T) {
	req := handlerGenerationRequest()
	req.Branch.SlotsPerDay = 2
	req.Branch.RecessSlot = nil

	handler := NewGenerationHandler(testGenerationService())
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/generate", req)

	handler.Generate(c)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var envelope struct {
		Data dto.GenerateTimetableResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Success)
	require.NotNil(t, envelope.Data.Failure)
	assert.Equal(t, "FEASIBILITY", envelope.Data.Failure.Stage)
}

func TestGenerationHandlerOptimizeRejectsEmptyTimetable(t *testing.T) {
	fixture := handlerGenerationRequest()
	req := dto.OptimizeTimetableRequest{
		Branch:     fixture.Branch,
		Curriculum: fixture.Curriculum,
	}

	handler := NewGenerationHandler(testGenerationService())
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodPost, "/timetable/optimize", req)

	handler.Optimize(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerationHandlerEngineStatus(t *testing.T) {
	handler := NewGenerationHandler(testGenerationService())
	w := httptest.NewRecorder()
	c := jsonContext(t, w, http.MethodGet, "/timetable/engine/status", nil)

	handler.EngineStatus(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.EngineStatusResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.ElementsMatch(t, []string{"constructive", "backtracking"}, envelope.Data.Strategies)
	assert.NotEmpty(t, envelope.Data.HardConstraints)
	assert.NotEmpty(t, envelope.Data.SoftConstraints)
}
