package services

import (
	"fmt"
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

func newAdvertService() AdvertService {
	return NewAdvertService(repositories.NewAdvertRepository())
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, PasswordHash: "hash", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createAdvertRequest(title string) *dto.CreateAdvertRequest {
	return &dto.CreateAdvertRequest{
		Title:           title,
		CompanyName:     "Acme Corp",
		ExperienceLevel: "MID_LEVEL",
		EmploymentType:  "FULL_TIME",
		Description:     "We build things.",
		JobType:         "REMOTE",
		Deadline:        time.Now().Add(30 * 24 * time.Hour),
	}
}

func TestAdvertService_CreateAndGet(t *testing.T) {
	setTestConfig(t)
	db := setupTestDB(t)
	svc := newAdvertService()
	owner := createTestUser(t, db, "owner@example.com")

	skills := "Go, PostgreSQL"
	req := createAdvertRequest("Backend Engineer")
	req.Skills = &skills

	created, err := svc.Create(db, owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", created.Title)
	assert.Equal(t, owner.ID, created.CreatedByID)
	assert.True(t, created.IsPublished, "adverts default to published")
	assert.True(t, created.IsActive)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, created.Skills)

	fetched, err := svc.Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	_, err = svc.Get(db, "00000000-0000-0000-0000-000000000000")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestAdvertService_OwnershipEnforcement(t *testing.T) {
	setTestConfig(t)
	db := setupTestDB(t)
	svc := newAdvertService()
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")

	created, err := svc.Create(db, owner.ID, createAdvertRequest("Backend Engineer"))
	require.NoError(t, err)

	update := &dto.UpdateAdvertRequest{
		Title:           "Hijacked",
		CompanyName:     "Evil Inc",
		ExperienceLevel: "SENIOR_LEVEL",
		EmploymentType:  "CONTRACT",
		Description:     "Changed.",
		JobType:         "ON_SITE",
		Deadline:        time.Now().Add(24 * time.Hour),
	}

	_, err = svc.Update(db, intruder.ID, created.ID, update)
	assert.ErrorIs(t, err, apperrors.ErrAdvertOwnershipRequired)

	err = svc.Delete(db, intruder.ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrAdvertOwnershipRequired)

	// The advert is untouched.
	fetched, err := svc.Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", fetched.Title)

	// The owner can still do both.
	updated, err := svc.Update(db, owner.ID, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Hijacked", updated.Title)

	require.NoError(t, svc.Delete(db, owner.ID, created.ID))
	_, err = svc.Get(db, created.ID)
	assert.Error(t, err)
}

func TestAdvertService_ListActive(t *testing.T) {
	setTestConfig(t)
	db := setupTestDB(t)
	svc := newAdvertService()
	owner := createTestUser(t, db, "owner@example.com")

	active := createAdvertRequest("Active Role")
	_, err := svc.Create(db, owner.ID, active)
	require.NoError(t, err)

	expired := createAdvertRequest("Expired Role")
	expired.Deadline = time.Now().Add(-24 * time.Hour)
	_, err = svc.Create(db, owner.ID, expired)
	require.NoError(t, err)

	unpublished := createAdvertRequest("Draft Role")
	published := false
	unpublished.IsPublished = &published
	draft, err := svc.Create(db, owner.ID, unpublished)
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)

	// The false must survive the INSERT, not be swallowed by a column default.
	var storedDraft models.JobAdvert
	require.NoError(t, db.First(&storedDraft, "id = ?", draft.ID).Error)
	assert.False(t, storedDraft.IsPublished, "draft stored as published")

	resp, err := svc.ListActive(db, &dto.AdvertSearchQuery{Page: 1})
	require.NoError(t, err)
	require.Len(t, resp.Adverts, 1)
	assert.Equal(t, "Active Role", resp.Adverts[0].Title)
	assert.EqualValues(t, 1, resp.Total)

	// MyAdverts shows everything, including drafts and expired ones.
	mine, err := svc.MyAdverts(db, owner.ID, 1)
	require.NoError(t, err)
	assert.Len(t, mine.Adverts, 3)
}

func TestAdvertService_Search(t *testing.T) {
	setTestConfig(t)
	db := setupTestDB(t)
	svc := newAdvertService()
	owner := createTestUser(t, db, "owner@example.com")

	mk := func(title, company, description, skills, location string) {
		req := createAdvertRequest(title)
		req.CompanyName = company
		req.Description = description
		if skills != "" {
			req.Skills = &skills
		}
		if location != "" {
			req.Location = &location
		}
		_, err := svc.Create(db, owner.ID, req)
		require.NoError(t, err)
	}

	mk("Go Developer", "Acme", "Backend services", "golang,grpc", "Berlin")
	mk("Frontend Developer", "Globex", "React dashboards", "react", "Berlin")
	mk("Data Engineer", "Initech", "Pipelines in Go", "python", "London")

	// Keyword matches across title, description, company and skills.
	resp, err := svc.ListActive(db, &dto.AdvertSearchQuery{Keyword: "go", Page: 1})
	require.NoError(t, err)
	titles := advertTitles(resp)
	assert.Contains(t, titles, "Go Developer")  // title + skills
	assert.Contains(t, titles, "Data Engineer") // description
	assert.NotContains(t, titles, "Frontend Developer")

	// Location narrows the keyword match.
	resp, err = svc.ListActive(db, &dto.AdvertSearchQuery{Keyword: "go", Location: "berlin", Page: 1})
	require.NoError(t, err)
	titles = advertTitles(resp)
	assert.Equal(t, []string{"Go Developer"}, titles)

	// Location alone works too.
	resp, err = svc.ListActive(db, &dto.AdvertSearchQuery{Location: "Berlin", Page: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Adverts, 2)
}

func TestAdvertService_PaginationClamping(t *testing.T) {
	setTestConfig(t)
	db := setupTestDB(t)
	svc := newAdvertService()
	owner := createTestUser(t, db, "owner@example.com")

	for i := 0; i < 25; i++ {
		_, err := svc.Create(db, owner.ID, createAdvertRequest(fmt.Sprintf("Role %02d", i)))
		require.NoError(t, err)
	}

	resp, err := svc.ListActive(db, &dto.AdvertSearchQuery{Page: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Adverts, 10)
	assert.EqualValues(t, 25, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)

	// Page past the end clamps to the last page.
	resp, err = svc.ListActive(db, &dto.AdvertSearchQuery{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Page)
	assert.Len(t, resp.Adverts, 5)

	// Page below one clamps to the first page.
	resp, err = svc.ListActive(db, &dto.AdvertSearchQuery{Page: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Len(t, resp.Adverts, 10)
}

func advertTitles(resp *dto.AdvertListResponse) []string {
	titles := make([]string, 0, len(resp.Adverts))
	for _, a := range resp.Adverts {
		titles = append(titles, a.Title)
	}
	return titles
}
