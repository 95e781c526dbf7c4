package services_test

import (
	"testing"

	"pgstay-http-service/internal/domain/models"
	"pgstay-http-service/internal/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestCreateComplaint(t *testing.T) {
	db := setupTestDB(t)
	complaintService := services.NewComplaintService(db, testConfig())
	room := createTestRoom(t, db, 101, 2, 5000)
	tenant := createTestTenant(t, db, "ravi", &room.ID)

	complaint := &models.Complaint{
		UserID:      tenant.ID,
		RoomID:      &room.ID,
		Title:       "Leaking tap",
		Description: "The bathroom tap has been leaking since Monday",
		// 客户端传入的状态会被忽略，新投诉总是open
		Status: models.ComplaintStatusResolved,
	}
	err := complaintService.CreateComplaint(complaint)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusOpen, complaint.Status)
}

func TestGetComplaintsForUserVisibility(t *testing.T) {
	db := setupTestDB(t)
	complaintService := services.NewComplaintService(db, testConfig())
	t1 := createTestTenant(t, db, "t1", nil)
	t2 := createTestTenant(t, db, "t2", nil)

	assert.NoError(t, complaintService.CreateComplaint(&models.Complaint{UserID: t1.ID, Title: "Noise", Description: "Loud music at night"}))
	assert.NoError(t, complaintService.CreateComplaint(&models.Complaint{UserID: t2.ID, Title: "Wifi", Description: "Wifi keeps dropping"}))

	// 租客只能看到自己的投诉
	own, err := complaintService.GetComplaintsForUser(t1.ID, models.RoleTenant)
	assert.NoError(t, err)
	assert.Len(t, own, 1)
	assert.Equal(t, "Noise", own[0].Title)

	// 房东能看到全部投诉
	all, err := complaintService.GetComplaintsForUser(0, models.RoleLandlord)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateComplaint(t *testing.T) {
	db := setupTestDB(t)
	complaintService := services.NewComplaintService(db, testConfig())
	tenant := createTestTenant(t, db, "ravi", nil)

	complaint := &models.Complaint{UserID: tenant.ID, Title: "Leaking tap", Description: "Still leaking"}
	assert.NoError(t, complaintService.CreateComplaint(complaint))

	// 只更新状态
	status := models.ComplaintStatusInProgress
	updated, err := complaintService.UpdateComplaint(complaint.ID, &status, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, updated.Status)

	// 只更新备注，状态不变
	remark := "Plumber scheduled for Friday"
	updated, err = complaintService.UpdateComplaint(complaint.ID, nil, &remark)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusInProgress, updated.Status)
	assert.Equal(t, remark, *updated.LandlordRemark)

	// 状态在取值之间自由流转，已解决的投诉可以重新打开
	status = models.ComplaintStatusResolved
	_, err = complaintService.UpdateComplaint(complaint.ID, &status, nil)
	assert.NoError(t, err)
	status = models.ComplaintStatusOpen
	updated, err = complaintService.UpdateComplaint(complaint.ID, &status, nil)
	assert.NoError(t, err)
	assert.Equal(t, models.ComplaintStatusOpen, updated.Status)
}

func TestUpdateComplaintInvalidStatus(t *testing.T) {
	db := setupTestDB(t)
	complaintService := services.NewComplaintService(db, testConfig())
	tenant := createTestTenant(t, db, "ravi", nil)

	complaint := &models.Complaint{UserID: tenant.ID, Title: "Leaking tap", Description: "Still leaking"}
	assert.NoError(t, complaintService.CreateComplaint(complaint))

	status := "closed"
	_, err := complaintService.UpdateComplaint(complaint.ID, &status, nil)
	assert.ErrorIs(t, err, services.ErrInvalidComplaintStatus)
}

func TestUpdateComplaintNotFound(t *testing.T) {
	db := setupTestDB(t)
	complaintService := services.NewComplaintService(db, testConfig())

	status := models.ComplaintStatusResolved
	_, err := complaintService.UpdateComplaint(999, &status, nil)
	assert.ErrorIs(t, err, services.ErrComplaintNotFound)
}
