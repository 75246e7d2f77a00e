package service_test

import (
	"testing"
	"time"

	"facility-cleaning-backend/internal/database/models"
	"facility-cleaning-backend/internal/mocks"
	"facility-cleaning-backend/internal/repository"
	"facility-cleaning-backend/internal/scheduler"
	"facility-cleaning-backend/internal/service"
	"facility-cleaning-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// WorkOrderFlowTestSuite tests the work order orchestration end to end
// against a real database, with notification delivery mocked out
type WorkOrderFlowTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	factories     *testutils.FactorySet
	ctrl          *gomock.Controller
	notifier      *mocks.MockNotifier
	svc           *service.WorkOrderService
}

// SetupSuite runs before all tests in the suite
func (suite *WorkOrderFlowTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *WorkOrderFlowTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *WorkOrderFlowTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.ctrl = gomock.NewController(suite.T())
	suite.notifier = mocks.NewMockNotifier(suite.ctrl)
	suite.svc = service.NewWorkOrderService(
		suite.baseTestSuite.DB,
		validator.New(),
		scheduler.NewFacilityClock(time.UTC),
		suite.notifier,
		suite.baseTestSuite.Config.TaskInsertBatchSize,
	)
}

// TearDownTest runs after each test
func (suite *WorkOrderFlowTestSuite) TearDownTest() {
	suite.ctrl.Finish()
	suite.baseTestSuite.TearDownTest()
}

// seedFrequency persists the given recurrence rule
func (suite *WorkOrderFlowTestSuite) seedFrequency(freq *models.Frequency) *models.Frequency {
	suite.Require().NoError(suite.baseTestSuite.DB.Create(freq).Error)
	return freq
}

// seedPairings persists a room, an asset and one asset task type per cleaning
// type, all sharing the given frequency
func (suite *WorkOrderFlowTestSuite) seedPairings(freq *models.Frequency, cleaningTypes ...string) []*models.AssetTaskType {
	db := suite.baseTestSuite.DB
	room := suite.factories.Room.Create()
	suite.Require().NoError(db.Create(room).Error)
	asset := suite.factories.Asset.Create(room.ID)
	suite.Require().NoError(db.Create(asset).Error)

	atts := make([]*models.AssetTaskType, 0, len(cleaningTypes))
	for _, cleaningType := range cleaningTypes {
		att := suite.factories.AssetTaskType.Create(room.ID, asset.ID, freq.ID)
		att.CleaningType = cleaningType
		suite.Require().NoError(db.Create(att).Error)
		atts = append(atts, att)
	}
	return atts
}

// seedMember persists a staff member with the given role
func (suite *WorkOrderFlowTestSuite) seedMember(role models.MemberRole) *models.Member {
	member := suite.factories.Member.WithRole(role)
	suite.Require().NoError(suite.baseTestSuite.DB.Create(member).Error)
	return member
}

// createTwoPairingOrder creates a fully configured work order spanning two
// pairings, daily from March 3rd through March 9th
func (suite *WorkOrderFlowTestSuite) createTwoPairingOrder(name string) (*service.WorkOrderResponse, []*models.AssetTaskType) {
	freq := suite.seedFrequency(suite.factories.Frequency.Create())
	atts := suite.seedPairings(freq, "Disinfection", "Dusting")
	cleaner := suite.seedMember(models.MemberRoleCleaner)
	inspector := suite.seedMember(models.MemberRoleInspector)

	suite.notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Times(2)

	response, err := suite.svc.Create(&service.CreateWorkOrderRequest{
		Name:                name,
		AssetTaskTypeIDs:    []uuid.UUID{atts[0].ID, atts[1].ID},
		FrequencyID:         freq.ID,
		CleaningValidPeriod: 24,
		StartDate:           time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2025, time.March, 9, 8, 0, 0, 0, time.UTC),
		CleanerIDs:          []uuid.UUID{cleaner.ID},
		InspectorIDs:        []uuid.UUID{inspector.ID},
	})
	suite.Require().NoError(err)
	return response, atts
}

// TestCreateMaterializesEveryPairing tests that creation expands the window
// once and writes the full task grid
func (suite *WorkOrderFlowTestSuite) TestCreateMaterializesEveryPairing() {
	response, atts := suite.createTwoPairingOrder("OR-1 Batch")

	// 7 daily occurrences across 2 pairings
	suite.Equal(int64(14), response.TaskCount)
	suite.Equal(models.WorkOrderStatusGenerated, response.Status)

	for _, att := range atts {
		var loaded models.AssetTaskType
		suite.Require().NoError(suite.baseTestSuite.DB.First(&loaded, "id = ?", att.ID).Error)
		suite.True(loaded.MssActive)
	}
}

// TestEndDateExtensionExpandsDeltaAcrossPairings tests that extending the end
// date of a multi-pairing order appends only the occurrences past the latest
// existing task, resolving the pairings from the task rows
func (suite *WorkOrderFlowTestSuite) TestEndDateExtensionExpandsDeltaAcrossPairings() {
	created, _ := suite.createTwoPairingOrder("OR-2 Extended")

	newEnd := time.Date(2025, time.March, 12, 8, 0, 0, 0, time.UTC)
	err := suite.svc.UpdateSchedule(created.ID, &service.UpdateScheduleRequest{
		EndDate:    &newEnd,
		Regenerate: true,
	})
	suite.Require().NoError(err)

	// 3 new daily occurrences per pairing on top of the original 14
	response, err := suite.svc.GetByID(created.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(20), response.TaskCount)
	suite.Equal(models.WorkOrderStatusGenerated, response.Status)
}

// TestRosterCompletionTriggersGeneration tests that assigning the last
// missing staff role on a fully scheduled order materializes its tasks,
// including the occurrences on the final schedule day
func (suite *WorkOrderFlowTestSuite) TestRosterCompletionTriggersGeneration() {
	freq := suite.seedFrequency(suite.factories.Frequency.Hourly(4, 8, 16))
	att := suite.seedPairings(freq, "Disinfection")[0]
	cleaner := suite.seedMember(models.MemberRoleCleaner)
	inspector := suite.seedMember(models.MemberRoleInspector)

	db := suite.baseTestSuite.DB
	workOrder := &models.WorkOrder{
		Name:            "OR-3 Incremental",
		Status:          models.WorkOrderStatusCreated,
		Active:          true,
		AssetTaskTypeID: &att.ID,
	}
	suite.Require().NoError(db.Create(workOrder).Error)

	startHour, startMinute, validPeriod := 8, 0, 24
	startDate := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	schedule := &models.WorkOrderSchedule{
		WorkOrderID:         workOrder.ID,
		FrequencyID:         &freq.ID,
		StartDate:           &startDate,
		StartHour:           &startHour,
		StartMinute:         &startMinute,
		EndDate:             &endDate,
		CleaningValidPeriod: &validPeriod,
		Active:              true,
	}
	suite.Require().NoError(db.Create(schedule).Error)

	suite.notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), workOrder.ID, gomock.Any()).
		Times(2)

	err := suite.svc.AssignStaff(workOrder.ID, &service.AssignStaffRequest{
		CleanerIDs:   []uuid.UUID{cleaner.ID},
		InspectorIDs: []uuid.UUID{inspector.ID},
	})
	suite.Require().NoError(err)

	// 08:00, 12:00 and 16:00 on both schedule days
	response, err := suite.svc.GetByID(workOrder.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(6), response.TaskCount)
	suite.Equal(models.WorkOrderStatusGenerated, response.Status)
}

// TestAssignStaffWithoutEndDateStopsShort tests that completing the roster
// on a schedule missing its end date commits without generating tasks
func (suite *WorkOrderFlowTestSuite) TestAssignStaffWithoutEndDateStopsShort() {
	freq := suite.seedFrequency(suite.factories.Frequency.Create())
	att := suite.seedPairings(freq, "Disinfection")[0]
	cleaner := suite.seedMember(models.MemberRoleCleaner)
	inspector := suite.seedMember(models.MemberRoleInspector)

	db := suite.baseTestSuite.DB
	workOrder := &models.WorkOrder{
		Name:            "OR-4 Open Ended",
		Status:          models.WorkOrderStatusCreated,
		Active:          true,
		AssetTaskTypeID: &att.ID,
	}
	suite.Require().NoError(db.Create(workOrder).Error)

	validPeriod := 24
	startDate := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	schedule := &models.WorkOrderSchedule{
		WorkOrderID:         workOrder.ID,
		FrequencyID:         &freq.ID,
		StartDate:           &startDate,
		CleaningValidPeriod: &validPeriod,
		Active:              true,
	}
	suite.Require().NoError(db.Create(schedule).Error)

	suite.notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), workOrder.ID, gomock.Any()).
		Times(2)

	err := suite.svc.AssignStaff(workOrder.ID, &service.AssignStaffRequest{
		CleanerIDs:   []uuid.UUID{cleaner.ID},
		InspectorIDs: []uuid.UUID{inspector.ID},
	})
	suite.Require().NoError(err)

	response, err := suite.svc.GetByID(workOrder.ID)
	suite.Require().NoError(err)
	suite.Zero(response.TaskCount)
	suite.Equal(models.WorkOrderStatusCreated, response.Status)
}

// TestAssignCleanersOnlyLeavesInspectors tests that a request naming only
// cleaners replaces the cleaner side and notifies just the incoming member
func (suite *WorkOrderFlowTestSuite) TestAssignCleanersOnlyLeavesInspectors() {
	created, _ := suite.createTwoPairingOrder("OR-5 Reassigned")
	replacement := suite.seedMember(models.MemberRoleCleaner)

	suite.notifier.EXPECT().
		Notify(replacement.ID, gomock.Any(), created.ID, gomock.Any()).
		Times(1)

	err := suite.svc.AssignStaff(created.ID, &service.AssignStaffRequest{
		CleanerIDs: []uuid.UUID{replacement.ID},
	})
	suite.Require().NoError(err)

	assignee, err := repository.NewAssigneeRepository(suite.baseTestSuite.DB).
		GetByWorkOrderID(created.ID)
	suite.Require().NoError(err)
	suite.Require().Len(assignee.Cleaners, 1)
	suite.Equal(replacement.ID, assignee.Cleaners[0].ID)
	suite.Len(assignee.Inspectors, 1)

	response, err := suite.svc.GetByID(created.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(response.Roster)
	suite.Equal(1, response.Roster.Cleaners)
	suite.Equal(1, response.Roster.Inspectors)
}

// TestUnchangedRosterIsNotRenotified tests that re-submitting the current
// roster delivers no notifications
func (suite *WorkOrderFlowTestSuite) TestUnchangedRosterIsNotRenotified() {
	created, _ := suite.createTwoPairingOrder("OR-6 Resubmitted")

	assignee, err := repository.NewAssigneeRepository(suite.baseTestSuite.DB).
		GetByWorkOrderID(created.ID)
	suite.Require().NoError(err)

	err = suite.svc.AssignStaff(created.ID, &service.AssignStaffRequest{
		CleanerIDs:   []uuid.UUID{assignee.Cleaners[0].ID},
		InspectorIDs: []uuid.UUID{assignee.Inspectors[0].ID},
	})
	suite.Require().NoError(err)
}

// TestResetIsIdempotent tests that resetting a work order tears down the
// aggregate, releases its pairings and can be repeated harmlessly
func (suite *WorkOrderFlowTestSuite) TestResetIsIdempotent() {
	created, atts := suite.createTwoPairingOrder("OR-7 Torn Down")

	result, err := suite.svc.Reset(&service.ResetScope{WorkOrderIDs: []uuid.UUID{created.ID}})
	suite.Require().NoError(err)
	suite.Equal(1, result.WorkOrdersDeleted)

	for _, att := range atts {
		var loaded models.AssetTaskType
		suite.Require().NoError(suite.baseTestSuite.DB.First(&loaded, "id = ?", att.ID).Error)
		suite.False(loaded.MssActive)
	}

	result, err = suite.svc.Reset(&service.ResetScope{WorkOrderIDs: []uuid.UUID{created.ID}})
	suite.Require().NoError(err)
	suite.Zero(result.WorkOrdersDeleted)

	_, err = suite.svc.GetByID(created.ID)
	suite.Error(err)
}

// TestWorkOrderFlowTestSuite runs the test suite
func TestWorkOrderFlowTestSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderFlowTestSuite))
}
