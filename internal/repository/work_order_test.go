package repository

import (
	"testing"
	"time"

	"facility-cleaning-backend/internal/database/models"
	"facility-cleaning-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// WorkOrderRepositoryTestSuite tests the work order aggregate repositories
type WorkOrderRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *WorkOrderRepository
	scheduleRepo  *ScheduleRepository
	taskRepo      *TaskRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *WorkOrderRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewWorkOrderRepository(suite.baseTestSuite.DB)
	suite.scheduleRepo = NewScheduleRepository(suite.baseTestSuite.DB)
	suite.taskRepo = NewTaskRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *WorkOrderRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *WorkOrderRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *WorkOrderRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createWorkOrder persists a minimal work order for the other records to
// hang off
func (suite *WorkOrderRepositoryTestSuite) createWorkOrder(name string) *models.WorkOrder {
	workOrder := &models.WorkOrder{
		Name:   name,
		Status: models.WorkOrderStatusCreated,
		Active: true,
	}
	suite.NoError(suite.repo.Create(workOrder))
	return workOrder
}

// createCatalogPairing persists a room, asset, frequency and asset task type
func (suite *WorkOrderRepositoryTestSuite) createCatalogPairing() *models.AssetTaskType {
	db := suite.baseTestSuite.DB
	room := suite.factories.Room.Create()
	suite.NoError(db.Create(room).Error)
	asset := suite.factories.Asset.Create(room.ID)
	suite.NoError(db.Create(asset).Error)
	freq := suite.factories.Frequency.Create()
	suite.NoError(db.Create(freq).Error)
	att := suite.factories.AssetTaskType.Create(room.ID, asset.ID, freq.ID)
	suite.NoError(db.Create(att).Error)
	return att
}

// TestCreate tests creating a new work order
func (suite *WorkOrderRepositoryTestSuite) TestCreate() {
	workOrder := suite.createWorkOrder("OR-1 Nightly")

	suite.NotEqual(uuid.Nil, workOrder.ID)
	suite.NotZero(workOrder.CreatedAt)
}

// TestCreateDuplicateName tests the global name uniqueness constraint
func (suite *WorkOrderRepositoryTestSuite) TestCreateDuplicateName() {
	suite.createWorkOrder("OR-1 Nightly")

	dup := &models.WorkOrder{Name: "OR-1 Nightly", Status: models.WorkOrderStatusCreated}
	err := suite.repo.Create(dup)
	suite.Error(err)
}

// TestGetByName tests name lookup
func (suite *WorkOrderRepositoryTestSuite) TestGetByName() {
	created := suite.createWorkOrder("OR-2 Weekly")

	found, err := suite.repo.GetByName("OR-2 Weekly")
	suite.NoError(err)
	suite.Equal(created.ID, found.ID)

	_, err = suite.repo.GetByName("missing")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestScheduleRoundTrip tests creating and reloading a schedule
func (suite *WorkOrderRepositoryTestSuite) TestScheduleRoundTrip() {
	workOrder := suite.createWorkOrder("OR-3")
	startHour := 8
	validPeriod := 24
	schedule := &models.WorkOrderSchedule{
		WorkOrderID:         workOrder.ID,
		StartHour:           &startHour,
		CleaningValidPeriod: &validPeriod,
		Active:              true,
	}
	suite.NoError(suite.scheduleRepo.Create(schedule))

	loaded, err := suite.scheduleRepo.GetByWorkOrderID(workOrder.ID)
	suite.NoError(err)
	suite.Equal(8, *loaded.StartHour)
	suite.Equal(24, *loaded.CleaningValidPeriod)
	suite.Nil(loaded.EndDate)
}

// TestTaskOccurrenceUniqueness tests the unique occurrence index
func (suite *WorkOrderRepositoryTestSuite) TestTaskOccurrenceUniqueness() {
	workOrder := suite.createWorkOrder("OR-4")
	att := suite.createCatalogPairing()
	occurrence := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

	task := models.CleaningTask{
		WorkOrderID:         workOrder.ID,
		AssetID:             att.AssetID,
		RoomID:              att.RoomID,
		AssetTaskTypeID:     att.ID,
		ScheduledDate:       occurrence,
		ValidCleaningPeriod: occurrence.Add(24 * time.Hour),
		Active:              true,
	}
	suite.NoError(suite.taskRepo.CreateInBatches([]models.CleaningTask{task}, 100))

	dup := task
	dup.ID = uuid.Nil
	err := suite.taskRepo.CreateInBatches([]models.CleaningTask{dup}, 100)
	suite.Error(err)
}

// TestLatestScheduledDate tests latest occurrence lookup
func (suite *WorkOrderRepositoryTestSuite) TestLatestScheduledDate() {
	workOrder := suite.createWorkOrder("OR-5")

	latest, err := suite.taskRepo.LatestScheduledDate(workOrder.ID)
	suite.NoError(err)
	suite.Nil(latest)

	att := suite.createCatalogPairing()
	first := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	second := first.AddDate(0, 0, 7)
	tasks := []models.CleaningTask{
		{
			WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
			AssetTaskTypeID: att.ID, ScheduledDate: first,
			ValidCleaningPeriod: first.Add(24 * time.Hour), Active: true,
		},
		{
			WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
			AssetTaskTypeID: att.ID, ScheduledDate: second,
			ValidCleaningPeriod: second.Add(24 * time.Hour), Active: true,
		},
	}
	suite.NoError(suite.taskRepo.CreateInBatches(tasks, 100))

	latest, err = suite.taskRepo.LatestScheduledDate(workOrder.ID)
	suite.NoError(err)
	suite.NotNil(latest)
	suite.True(latest.Equal(second))
}

// TestShiftValidPeriod tests deadline shifting with a cutoff
func (suite *WorkOrderRepositoryTestSuite) TestShiftValidPeriod() {
	workOrder := suite.createWorkOrder("OR-6")
	att := suite.createCatalogPairing()

	past := time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC)
	future := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	tasks := []models.CleaningTask{
		{
			WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
			AssetTaskTypeID: att.ID, ScheduledDate: past,
			ValidCleaningPeriod: past.Add(24 * time.Hour), Active: true,
		},
		{
			WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
			AssetTaskTypeID: att.ID, ScheduledDate: future,
			ValidCleaningPeriod: future, Active: true,
		},
	}
	suite.NoError(suite.taskRepo.CreateInBatches(tasks, 100))

	cutoff := time.Now().UTC().Truncate(24 * time.Hour)
	suite.NoError(suite.taskRepo.ShiftValidPeriod(workOrder.ID, 12, cutoff))

	loaded, err := suite.taskRepo.ListByWorkOrderID(workOrder.ID)
	suite.NoError(err)
	suite.Len(loaded, 2)
	// Elapsed task untouched, upcoming task shifted by 12 hours
	suite.True(loaded[0].ValidCleaningPeriod.Equal(past.Add(24 * time.Hour)))
	suite.True(loaded[1].ValidCleaningPeriod.Equal(future.Add(12 * time.Hour)))
}

// TestSetActivePropagation tests flipping the active flag on tasks
func (suite *WorkOrderRepositoryTestSuite) TestSetActivePropagation() {
	workOrder := suite.createWorkOrder("OR-7")
	att := suite.createCatalogPairing()
	occurrence := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	tasks := []models.CleaningTask{{
		WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
		AssetTaskTypeID: att.ID, ScheduledDate: occurrence,
		ValidCleaningPeriod: occurrence.Add(24 * time.Hour), Active: true,
	}}
	suite.NoError(suite.taskRepo.CreateInBatches(tasks, 100))

	suite.NoError(suite.taskRepo.SetActive(workOrder.ID, false))

	loaded, err := suite.taskRepo.ListByWorkOrderID(workOrder.ID)
	suite.NoError(err)
	suite.False(loaded[0].Active)
}

// TestDeleteByWorkOrderID tests task teardown
func (suite *WorkOrderRepositoryTestSuite) TestDeleteByWorkOrderID() {
	workOrder := suite.createWorkOrder("OR-8")
	att := suite.createCatalogPairing()
	occurrence := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	tasks := []models.CleaningTask{{
		WorkOrderID: workOrder.ID, AssetID: att.AssetID, RoomID: att.RoomID,
		AssetTaskTypeID: att.ID, ScheduledDate: occurrence,
		ValidCleaningPeriod: occurrence.Add(24 * time.Hour), Active: true,
	}}
	suite.NoError(suite.taskRepo.CreateInBatches(tasks, 100))

	suite.NoError(suite.taskRepo.DeleteByWorkOrderID(workOrder.ID))

	count, err := suite.taskRepo.CountByWorkOrderID(workOrder.ID)
	suite.NoError(err)
	suite.Zero(count)

	// Deleting again is a no-op
	suite.NoError(suite.taskRepo.DeleteByWorkOrderID(workOrder.ID))
}

// TestWorkOrderRepositoryTestSuite runs the test suite
func TestWorkOrderRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(WorkOrderRepositoryTestSuite))
}
