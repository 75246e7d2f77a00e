package service_test

import (
	"testing"
	"time"

	"facility-cleaning-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// WorkOrderServiceTestSuite defines the test suite for WorkOrderService
type WorkOrderServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	validator *validator.Validate
}

// SetupTest sets up the test suite
func (suite *WorkOrderServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.validator = validator.New()
}

// TearDownTest cleans up after each test
func (suite *WorkOrderServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func validCreateRequest() *service.CreateWorkOrderRequest {
	return &service.CreateWorkOrderRequest{
		Name:                "OR-1 Nightly Disinfection",
		AssetTaskTypeIDs:    []uuid.UUID{uuid.New()},
		FrequencyID:         uuid.New(),
		CleaningValidPeriod: 24,
		StartDate:           time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2025, time.March, 31, 8, 0, 0, 0, time.UTC),
		CleanerIDs:          []uuid.UUID{uuid.New()},
		InspectorIDs:        []uuid.UUID{uuid.New()},
	}
}

// TestCreateWorkOrderValidation tests the validation rules on the create request
func (suite *WorkOrderServiceTestSuite) TestCreateWorkOrderValidation() {
	testCases := []struct {
		name        string
		mutate      func(req *service.CreateWorkOrderRequest)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid request",
			mutate:      func(req *service.CreateWorkOrderRequest) {},
			expectError: false,
		},
		{
			name: "Missing name",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.Name = ""
			},
			expectError: true,
			errorMsg:    "Name",
		},
		{
			name: "Name too long",
			mutate: func(req *service.CreateWorkOrderRequest) {
				for len(req.Name) <= 100 {
					req.Name += "x"
				}
			},
			expectError: true,
			errorMsg:    "Name",
		},
		{
			name: "No asset task types",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.AssetTaskTypeIDs = nil
			},
			expectError: true,
			errorMsg:    "AssetTaskTypeIDs",
		},
		{
			name: "Missing frequency",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.FrequencyID = uuid.Nil
			},
			expectError: true,
			errorMsg:    "FrequencyID",
		},
		{
			name: "Zero valid period",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.CleaningValidPeriod = 0
			},
			expectError: true,
			errorMsg:    "CleaningValidPeriod",
		},
		{
			name: "Missing start date",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.StartDate = time.Time{}
			},
			expectError: true,
			errorMsg:    "StartDate",
		},
		{
			name: "Missing end date",
			mutate: func(req *service.CreateWorkOrderRequest) {
				req.EndDate = time.Time{}
			},
			expectError: true,
			errorMsg:    "EndDate",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			req := validCreateRequest()
			tc.mutate(req)

			err := suite.validator.Struct(req)
			if tc.expectError {
				assert.Error(suite.T(), err)
				assert.Contains(suite.T(), err.Error(), tc.errorMsg)
			} else {
				assert.NoError(suite.T(), err)
			}
		})
	}
}

// TestUpdateScheduleValidation tests the bounds on partial schedule edits
func (suite *WorkOrderServiceTestSuite) TestUpdateScheduleValidation() {
	intPtr := func(v int) *int { return &v }

	testCases := []struct {
		name        string
		request     *service.UpdateScheduleRequest
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Empty edit is valid",
			request:     &service.UpdateScheduleRequest{},
			expectError: false,
		},
		{
			name: "Valid hour and minute",
			request: &service.UpdateScheduleRequest{
				StartHour:   intPtr(14),
				StartMinute: intPtr(30),
			},
			expectError: false,
		},
		{
			name: "Hour out of bounds",
			request: &service.UpdateScheduleRequest{
				StartHour: intPtr(24),
			},
			expectError: true,
			errorMsg:    "StartHour",
		},
		{
			name: "Minute out of bounds",
			request: &service.UpdateScheduleRequest{
				StartMinute: intPtr(60),
			},
			expectError: true,
			errorMsg:    "StartMinute",
		},
		{
			name: "Zero valid period",
			request: &service.UpdateScheduleRequest{
				CleaningValidPeriod: intPtr(0),
			},
			expectError: true,
			errorMsg:    "CleaningValidPeriod",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.validator.Struct(tc.request)
			if tc.expectError {
				assert.Error(suite.T(), err)
				assert.Contains(suite.T(), err.Error(), tc.errorMsg)
			} else {
				assert.NoError(suite.T(), err)
			}
		})
	}
}

// TestWorkOrderServiceTestSuite runs the test suite
func TestWorkOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderServiceTestSuite))
}
