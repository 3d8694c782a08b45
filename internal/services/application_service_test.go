package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"jobboard_backend/internal/models"
	"jobboard_backend/internal/repositories"
	"jobboard_backend/internal/services/dto"
	"jobboard_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type applicationFixture struct {
	svc      ApplicationService
	storage  *fakeStorage
	provider *fakeEmailProvider
}

func newApplicationFixture() *applicationFixture {
	storage := newFakeStorage()
	provider := &fakeEmailProvider{}
	svc := NewApplicationService(
		repositories.NewApplicationRepository(),
		repositories.NewAdvertRepository(),
		storage,
		provider,
	)
	return &applicationFixture{svc: svc, storage: storage, provider: provider}
}

func createTestAdvert(t *testing.T, db *gorm.DB, ownerID string, deadline time.Time) models.JobAdvert {
	t.Helper()
	advert := models.JobAdvert{
		Title:           "Backend Engineer",
		CompanyName:     "Acme Corp",
		ExperienceLevel: models.ExperienceLevelMid,
		EmploymentType:  models.EmploymentTypeFullTime,
		Description:     "We build things.",
		JobType:         models.LocationTypeRemote,
		IsPublished:     true,
		Deadline:        deadline,
		CreatedByID:     ownerID,
	}
	require.NoError(t, db.Create(&advert).Error)
	return advert
}

func testResume() *ResumeUpload {
	return &ResumeUpload{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Reader:      strings.NewReader("%PDF-1.4 fake"),
	}
}

func TestApplicationService_Apply(t *testing.T) {
	setTestConfig(t)
	ctx := context.Background()

	t.Run("stores the application and the resume", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))

		resp, err := f.svc.Apply(ctx, db, advert.ID, &dto.ApplyRequest{
			Name:  "Alice",
			Email: "alice@example.com",
		}, testResume())
		require.NoError(t, err)

		assert.Equal(t, string(models.ApplicationStatusApplied), resp.Status)
		assert.Equal(t, advert.ID, resp.JobAdvertID)
		assert.NotEmpty(t, resp.ResumeURL)
		assert.Equal(t, 1, f.storage.fileCount())
	})

	t.Run("second application from the same email is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))

		req := &dto.ApplyRequest{Name: "Bob", Email: "bob@example.com"}
		_, err := f.svc.Apply(ctx, db, advert.ID, req, testResume())
		require.NoError(t, err)

		_, err = f.svc.Apply(ctx, db, advert.ID, req, testResume())
		assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

		var count int64
		db.Model(&models.JobApplication{}).Count(&count)
		assert.EqualValues(t, 1, count, "duplicate must not create a second row")
	})

	t.Run("expired advert no longer accepts applications", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(-time.Hour))

		_, err := f.svc.Apply(ctx, db, advert.ID, &dto.ApplyRequest{Name: "Carol", Email: "carol@example.com"}, testResume())
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.HTTPCode)
	})

	t.Run("the same email may apply to different adverts", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		first := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))
		second := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))

		req := &dto.ApplyRequest{Name: "Dave", Email: "dave@example.com"}
		_, err := f.svc.Apply(ctx, db, first.ID, req, testResume())
		require.NoError(t, err)
		_, err = f.svc.Apply(ctx, db, second.ID, req, testResume())
		require.NoError(t, err)

		list, err := f.svc.MyApplications(ctx, db, "dave@example.com", 1)
		require.NoError(t, err)
		assert.Len(t, list.Applications, 2)
	})
}

func TestApplicationService_ListByAdvert(t *testing.T) {
	setTestConfig(t)
	ctx := context.Background()
	db := setupTestDB(t)
	f := newApplicationFixture()
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))

	_, err := f.svc.Apply(ctx, db, advert.ID, &dto.ApplyRequest{Name: "Erin", Email: "erin@example.com"}, testResume())
	require.NoError(t, err)

	// Only the advert's creator sees the applications.
	_, err = f.svc.ListByAdvert(ctx, db, other.ID, advert.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrApplicationsViewForbidden)

	list, err := f.svc.ListByAdvert(ctx, db, owner.ID, advert.ID, 1)
	require.NoError(t, err)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "erin@example.com", list.Applications[0].Email)
}

func TestApplicationService_Decide(t *testing.T) {
	setTestConfig(t)
	ctx := context.Background()

	apply := func(t *testing.T, db *gorm.DB, f *applicationFixture, advertID, email string) string {
		t.Helper()
		resp, err := f.svc.Apply(ctx, db, advertID, &dto.ApplyRequest{Name: "Applicant", Email: email}, testResume())
		require.NoError(t, err)
		return resp.ID
	}

	t.Run("unknown status is rejected without a write", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))
		appID := apply(t, db, f, advert.ID, "frank@example.com")

		_, err := f.svc.Decide(ctx, db, owner.ID, appID, "HIRED")
		assert.ErrorIs(t, err, apperrors.ErrUnknownApplicationStatus)

		var stored models.JobApplication
		require.NoError(t, db.First(&stored, "id = ?", appID).Error)
		assert.Equal(t, models.ApplicationStatusApplied, stored.Status)
	})

	t.Run("non-owner cannot decide", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		other := createTestUser(t, db, "other@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))
		appID := apply(t, db, f, advert.ID, "grace@example.com")

		_, err := f.svc.Decide(ctx, db, other.ID, appID, string(models.ApplicationStatusRejected))
		assert.ErrorIs(t, err, apperrors.ErrApplicationDecideForbidden)

		var stored models.JobApplication
		require.NoError(t, db.First(&stored, "id = ?", appID).Error)
		assert.Equal(t, models.ApplicationStatusApplied, stored.Status, "status must be unchanged")
	})

	t.Run("rejection updates the status and emails the applicant", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))
		appID := apply(t, db, f, advert.ID, "heidi@example.com")

		resp, err := f.svc.Decide(ctx, db, owner.ID, appID, string(models.ApplicationStatusRejected))
		require.NoError(t, err)
		assert.Equal(t, string(models.ApplicationStatusRejected), resp.Status)

		sent := waitForEmails(t, f.provider, 1)
		last := sent[len(sent)-1]
		assert.Equal(t, []string{"heidi@example.com"}, last.To)
		assert.Equal(t, "job_application_update", last.Template)
		assert.Equal(t, "Applicant", last.Data["ApplicantName"])
		assert.Equal(t, "Backend Engineer", last.Data["JobTitle"])
		assert.Equal(t, "Acme Corp", last.Data["CompanyName"])
	})

	t.Run("interview scheduling does not email", func(t *testing.T) {
		db := setupTestDB(t)
		f := newApplicationFixture()
		owner := createTestUser(t, db, "owner@example.com")
		advert := createTestAdvert(t, db, owner.ID, time.Now().Add(24*time.Hour))
		appID := apply(t, db, f, advert.ID, "ivan@example.com")

		resp, err := f.svc.Decide(ctx, db, owner.ID, appID, string(models.ApplicationStatusInterviewScheduled))
		require.NoError(t, err)
		assert.Equal(t, string(models.ApplicationStatusInterviewScheduled), resp.Status)

		// Give any stray goroutine a moment, then assert silence.
		time.Sleep(50 * time.Millisecond)
		assert.Empty(t, f.provider.sentEmails())
	})
}
