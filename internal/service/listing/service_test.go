package listing

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seasonwork/seasonwork-backend-go/internal/domain/auth"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/listing"
	"github.com/seasonwork/seasonwork-backend-go/internal/domain/user"
	"github.com/seasonwork/seasonwork-backend-go/internal/pkg/database"
	"github.com/seasonwork/seasonwork-backend-go/internal/repository/postgresql"
)

var testListingDB *database.DB

func listingTestInit(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	if testListingDB == nil {
		var err error
		testListingDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
	}
	return testListingDB
}

func truncateListingTables(t *testing.T, ctx context.Context, db *database.DB) {
	t.Helper()
	for _, table := range []string{"applications", "listings", "employer_accounts", "users"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createListingTestUser(t *testing.T, ctx context.Context, db *database.DB, role user.Role, status user.VerificationStatus) string {
	t.Helper()
	var userID string
	emailAddr := fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano())
	err := db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, verification_status)
		VALUES ($1, 'not-a-real-hash', $2, $3)
		RETURNING id
	`, emailAddr, role, status).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func newListingTestService(db *database.DB) listing.Service {
	return NewListingService(
		db,
		postgresql.NewListingRepository(db),
		postgresql.NewApplicationRepository(db),
		postgresql.NewBillingRepository(db),
		postgresql.NewUserRepository(db),
	)
}

func grantCredits(t *testing.T, ctx context.Context, db *database.DB, userID string, credits int) {
	t.Helper()
	_, err := db.Exec(ctx, `
		INSERT INTO employer_accounts (user_id, listing_credits)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET listing_credits = $2
	`, userID, credits)
	require.NoError(t, err)
}

func createTestListing(t *testing.T, ctx context.Context, svc listing.Service, owner auth.Principal, isPublic bool) listing.Response {
	t.Helper()
	created, err := svc.Create(ctx, owner, listing.CreateRequest{
		Category:      "housing",
		Title:         "Staff housing near the boardwalk",
		Description:   "Shared rooms, walking distance to work",
		ContactMethod: "phone",
		ContactValue:  "+1-555-0100",
		IsPublic:      &isPublic,
	})
	require.NoError(t, err)
	return created
}

func TestGet_MemberOnlyListingHiddenFromUnverified(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	grantCredits(t, ctx, db, employerID, 1)

	svc := newListingTestService(db)
	created := createTestListing(t, ctx, svc, owner, false)

	// Anonymous viewers get not-found, never forbidden
	_, err := svc.Get(ctx, nil, created.ID)
	assert.ErrorIs(t, err, listing.ErrListingNotFound)

	// Unverified workers are treated the same
	unverifiedID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusUnverified)
	_, err = svc.Get(ctx, &auth.Principal{UserID: unverifiedID, Role: user.RoleWorker}, created.ID)
	assert.ErrorIs(t, err, listing.ErrListingNotFound)

	// Verified workers see it, contact included
	verifiedID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	found, err := svc.Get(ctx, &auth.Principal{UserID: verifiedID, Role: user.RoleWorker}, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ContactValue)
	assert.Equal(t, "+1-555-0100", *found.ContactValue)

	// The owner always sees their own listing
	_, err = svc.Get(ctx, &owner, created.ID)
	assert.NoError(t, err)
}

func TestSearch_DropsHiddenRows(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	grantCredits(t, ctx, db, employerID, 2)

	svc := newListingTestService(db)
	public := createTestListing(t, ctx, svc, owner, true)
	memberOnly := createTestListing(t, ctx, svc, owner, false)

	active := true
	filters := listing.SearchFilters{Active: &active}

	// Anonymous search sees only the public row
	results, err := svc.Search(ctx, nil, filters)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, public.ID, results[0].ID)

	// Verified viewer sees both
	verifiedID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	results, err = svc.Search(ctx, &auth.Principal{UserID: verifiedID, Role: user.RoleWorker}, filters)
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []string{results[0].ID, results[1].ID}
	assert.Contains(t, ids, memberOnly.ID)
}

func TestSearch_ActiveFilterExcludesExpired(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	grantCredits(t, ctx, db, employerID, 2)

	svc := newListingTestService(db)
	current := createTestListing(t, ctx, svc, owner, true)
	stale := createTestListing(t, ctx, svc, owner, true)

	// Still flagged active, but past its expiry
	expired := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, owner, stale.ID, listing.UpdateRequest{ExpiresAt: &expired})
	require.NoError(t, err)

	active := true
	results, err := svc.Search(ctx, nil, listing.SearchFilters{Active: &active})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, current.ID, results[0].ID)

	inactive := false
	results, err = svc.Search(ctx, &owner, listing.SearchFilters{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, stale.ID, results[0].ID)
}

func TestCreate_RequiresEmployerRole(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	workerID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	svc := newListingTestService(db)

	_, err := svc.Create(ctx, auth.Principal{UserID: workerID, Role: user.RoleWorker}, listing.CreateRequest{
		Category:      "jobs",
		Title:         "Test",
		Description:   "Test",
		ContactMethod: "email",
		ContactValue:  "x@example.com",
	})
	assert.ErrorIs(t, err, user.ErrEmployerRequired)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	otherID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	adminID := createListingTestUser(t, ctx, db, user.RoleAdmin, user.StatusUnverified)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	grantCredits(t, ctx, db, employerID, 1)

	svc := newListingTestService(db)
	created := createTestListing(t, ctx, svc, owner, true)

	newTitle := "Updated housing listing"
	_, err := svc.Update(ctx, auth.Principal{UserID: otherID, Role: user.RoleEmployer}, created.ID, listing.UpdateRequest{Title: &newTitle})
	assert.ErrorIs(t, err, listing.ErrNotListingOwner)

	updated, err := svc.Update(ctx, owner, created.ID, listing.UpdateRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)

	// Admins can edit any listing
	deactivate := false
	updated, err = svc.Update(ctx, auth.Principal{UserID: adminID, Role: user.RoleAdmin}, created.ID, listing.UpdateRequest{IsActive: &deactivate})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestApply_FullFlow(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	workerID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	grantCredits(t, ctx, db, employerID, 1)

	svc := newListingTestService(db)
	created := createTestListing(t, ctx, svc, owner, true)

	application, err := svc.Apply(ctx, worker, created.ID, listing.ApplyRequest{Message: "Available all summer"})
	require.NoError(t, err)
	assert.Equal(t, workerID, application.UserID)

	// Re-applying is rejected
	_, err = svc.Apply(ctx, worker, created.ID, listing.ApplyRequest{Message: "Again"})
	assert.ErrorIs(t, err, listing.ErrAlreadyApplied)

	// Employers cannot apply
	_, err = svc.Apply(ctx, owner, created.ID, listing.ApplyRequest{Message: "Hi"})
	assert.ErrorIs(t, err, user.ErrWorkerRequired)

	// Only the owner reads the applications
	_, err = svc.ListApplications(ctx, worker, created.ID)
	assert.ErrorIs(t, err, listing.ErrNotListingOwner)

	applications, err := svc.ListApplications(ctx, owner, created.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	assert.Equal(t, "Available all summer", applications[0].Message)
}

func TestApply_InactiveListingRejected(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	workerID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	grantCredits(t, ctx, db, employerID, 1)

	svc := newListingTestService(db)
	created := createTestListing(t, ctx, svc, owner, true)

	deactivate := false
	_, err := svc.Update(ctx, owner, created.ID, listing.UpdateRequest{IsActive: &deactivate})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, worker, created.ID, listing.ApplyRequest{Message: "Hello"})
	assert.ErrorIs(t, err, listing.ErrListingNotAccepting)
}

func TestApply_ExpiredListingRejected(t *testing.T) {
	ctx := context.Background()
	db := listingTestInit(t)
	truncateListingTables(t, ctx, db)

	employerID := createListingTestUser(t, ctx, db, user.RoleEmployer, user.StatusUnverified)
	workerID := createListingTestUser(t, ctx, db, user.RoleWorker, user.StatusApproved)
	owner := auth.Principal{UserID: employerID, Role: user.RoleEmployer}
	worker := auth.Principal{UserID: workerID, Role: user.RoleWorker}
	grantCredits(t, ctx, db, employerID, 1)

	svc := newListingTestService(db)
	created := createTestListing(t, ctx, svc, owner, true)

	expired := time.Now().Add(-time.Hour).Format(time.RFC3339)
	_, err := svc.Update(ctx, owner, created.ID, listing.UpdateRequest{ExpiresAt: &expired})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, worker, created.ID, listing.ApplyRequest{Message: "Hello"})
	assert.ErrorIs(t, err, listing.ErrListingNotAccepting)
}
