package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourhub/handlers"
	"tourhub/models"
	"tourhub/routes"
	"tourhub/services/authz"
	"tourhub/services/booking"
	"tourhub/services/cascade"
	"tourhub/services/session"
	"tourhub/services/stats"
	"tourhub/services/story"
	"tourhub/services/tourpackage"
	"tourhub/services/user"
	"tourhub/testutil"
	"tourhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeGateway struct {
	amounts []float64
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", utils.Validation("amount must be positive")
	}
	g.amounts = append(g.amounts, amount)
	return "pi_test_secret", nil
}

type server struct {
	router  *gin.Engine
	stores  *testutil.Stores
	gateway *fakeGateway
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	stores := testutil.NewStores()
	repos := stores.Repositories()
	sessions := session.NewSessionService(utils.NewTokenManager("test-secret", 10*time.Hour), nil, logger)
	resolver := authz.NewStoreRoleResolver(repos.Users)
	gateway := &fakeGateway{}

	hb := handlers.NewHandlerBundle(handlers.Services{
		Sessions: sessions,
		Resolver: resolver,
		Users:    user.NewUserService(repos.Users, logger),
		Cascade:  cascade.NewCoordinator(repos.Users, repos.Bookings, repos.Stories, nil, cascade.ModeBestEffort, logger),
		Stats:    stats.NewAggregator(repos),
		Packages: tourpackage.NewPackageService(repos.Packages, logger),
		Bookings: booking.NewBookingService(repos.Bookings, repos.Users, logger),
		Gateway:  gateway,
		Stories:  story.NewStoryService(repos.Stories, repos.Users, logger),
	})

	r := gin.New()
	r.Use(utils.ErrorHandler())
	routes.RegisterRoutes(r, hb, nil)
	return &server{router: r, stores: stores, gateway: gateway}
}

func (s *server) seedUser(t *testing.T, email string, role models.Role) {
	t.Helper()
	require.NoError(t, s.stores.Users.Create(context.Background(), &models.User{Email: email, Name: email, Role: role}))
}

func (s *server) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// login exchanges an email for a session cookie through POST /jwt.
func (s *server) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/jwt", gin.H{"email": email}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return &http.Cookie{Name: c.Name, Value: c.Value}
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestIssueTokenSetsSessionCookie(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/jwt", gin.H{"email": "ana@example.com", "name": "Ana"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, utils.SessionCookieName, c.Name)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteNoneMode, c.SameSite)
	assert.Equal(t, 36000, c.MaxAge)
}

func TestIssueTokenWithoutEmailIs400(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/jwt", gin.H{"name": "Ana"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	cookie := s.login(t, "ana@example.com")

	rec := s.do(t, http.MethodGet, "/logOut", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCreateUserIsIdempotent(t *testing.T) {
	s := newServer(t)
	body := gin.H{"email": "ana@example.com", "name": "Ana", "role": "admin"}

	first := s.do(t, http.MethodPost, "/users", body, nil)
	assert.Equal(t, http.StatusCreated, first.Code)

	second := s.do(t, http.MethodPost, "/users", body, nil)
	assert.Equal(t, http.StatusOK, second.Code)
	var resp map[string]interface{}
	decode(t, second, &resp)
	assert.Equal(t, "User already exists", resp["message"])
	assert.Nil(t, resp["insertedId"])

	assert.Equal(t, 1, s.stores.Users.Len())
	rec := s.do(t, http.MethodGet, "/users/role/ana@example.com", nil, nil)
	decode(t, rec, &resp)
	assert.Equal(t, "user", resp["role"])
}

func TestProtectedRouteWithoutCookieIs401(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/manage-candidates", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWrongRoleIsForbiddenWithoutMutation(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "tourist@example.com", models.RoleTourist)
	cookie := s.login(t, "tourist@example.com")

	rec := s.do(t, http.MethodPost, "/packages", gin.H{"name": "Sundarbans"}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	n, err := s.stores.Packages.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	id := primitive.NewObjectID()
	require.NoError(t, s.stores.Bookings.Create(context.Background(), &models.Booking{
		ID: id, TouristEmail: "tourist@example.com", GuideEmail: "guide@example.com", Status: models.BookingInReview,
	}))
	rec = s.do(t, http.MethodPatch, "/assigned-tours/"+id.Hex(), gin.H{"status": "accepted"}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	b, err := s.stores.Bookings.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.BookingInReview, b.Status)
}

func TestAdminCreatesPackage(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "admin@example.com", models.RoleAdmin)
	cookie := s.login(t, "admin@example.com")

	rec := s.do(t, http.MethodPost, "/packages", gin.H{"name": "Sundarbans", "price": 300}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]interface{}
	decode(t, rec, &resp)
	id, _ := resp["insertedId"].(string)
	require.NotEmpty(t, id)

	rec = s.do(t, http.MethodGet, "/api/packages/"+id, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteMissingBookingIs404(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "admin@example.com", models.RoleAdmin)
	require.NoError(t, s.stores.Bookings.Create(context.Background(), &models.Booking{TouristEmail: "ana@example.com"}))
	cookie := s.login(t, "admin@example.com")

	rec := s.do(t, http.MethodDelete, "/bookings/"+primitive.NewObjectID().Hex(), nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, s.stores.Bookings.Len())
}

func TestTouristDeletesOwnBooking(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleUser)
	cookie := s.login(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/bookings", gin.H{"touristEmail": "ana@example.com", "totalPrice": "120"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]interface{}
	decode(t, rec, &created)
	id, _ := created["insertedId"].(string)
	require.NotEmpty(t, id)

	rec = s.do(t, http.MethodDelete, "/bookings/"+id, nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, s.stores.Bookings.Len())
}

func TestCreateBookingForAnotherTouristIsForbidden(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	s.seedUser(t, "mallory@example.com", models.RoleUser)
	cookie := s.login(t, "mallory@example.com")

	rec := s.do(t, http.MethodPost, "/bookings", gin.H{"touristEmail": "ana@example.com", "touristName": "Forged"}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, s.stores.Bookings.Len())
}

func TestCreatedBookingCopiesUserProfile(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	cookie := s.login(t, "ana@example.com")

	rec := s.do(t, http.MethodPost, "/bookings", gin.H{"touristName": "Forged", "touristPhoto": "x.png", "totalPrice": 90}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	bookings := s.stores.Bookings.All()
	require.Len(t, bookings, 1)
	u, err := s.stores.Users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.Email, bookings[0].TouristEmail)
	assert.Equal(t, u.Name, bookings[0].TouristName)
	assert.Equal(t, u.Photo, bookings[0].TouristPhoto)
}

func TestPaymentPromotesPayerToTourist(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleUser)
	id := primitive.NewObjectID()
	require.NoError(t, s.stores.Bookings.Create(context.Background(), &models.Booking{
		ID: id, TouristEmail: "ana@example.com", Status: models.BookingPending, TotalPrice: 120,
	}))
	cookie := s.login(t, "ana@example.com")

	rec := s.do(t, http.MethodGet, "/my-orders/ana@example.com", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/create-payment-intent", gin.H{"amount": 120}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []float64{120}, s.gateway.amounts)

	rec = s.do(t, http.MethodPost, "/payments", gin.H{
		"bookingId":     id.Hex(),
		"transactionId": "pi_123",
		"customerEmail": "ana@example.com",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	b, err := s.stores.Bookings.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.BookingInReview, b.Status)
	assert.Equal(t, "pi_123", b.TransactionID)
	assert.NotNil(t, b.PaidAt)

	u, err := s.stores.Users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTourist, u.Role)

	rec = s.do(t, http.MethodGet, "/my-orders/ana@example.com", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []models.Booking
	decode(t, rec, &orders)
	assert.Len(t, orders, 1)
}

func TestPaymentForMissingBookingIs404(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleUser)

	rec := s.do(t, http.MethodPost, "/payments", gin.H{
		"bookingId":     primitive.NewObjectID().Hex(),
		"transactionId": "pi_123",
		"customerEmail": "ana@example.com",
	}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	u, err := s.stores.Users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
}

func TestProfileUpdateCascades(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	s.seedUser(t, "guide@example.com", models.RoleGuide)
	bookingID := primitive.NewObjectID()
	require.NoError(t, s.stores.Bookings.Create(ctx, &models.Booking{
		ID: bookingID, TouristEmail: "ana@example.com", GuideEmail: "guide@example.com", GuideName: "Old",
	}))
	storyID := primitive.NewObjectID()
	require.NoError(t, s.stores.Stories.Create(ctx, &models.Story{
		ID: storyID, Title: "Rain", Text: "wet", Images: []string{"a.jpg"},
		Author: models.StoryAuthor{Email: "guide@example.com", Name: "Old"},
	}))
	cookie := s.login(t, "guide@example.com")

	rec := s.do(t, http.MethodPatch, "/users/profile/guide@example.com", gin.H{"name": "Rafi", "photo": "rafi.png"}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := s.stores.Users.GetByEmail(ctx, "guide@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Rafi", u.Name)

	b, err := s.stores.Bookings.GetByID(ctx, bookingID)
	require.NoError(t, err)
	assert.Equal(t, "Rafi", b.GuideName)
	assert.Equal(t, "rafi.png", b.GuidePhoto)

	st, err := s.stores.Stories.GetByID(ctx, storyID)
	require.NoError(t, err)
	assert.Equal(t, "Rafi", st.Author.Name)
	assert.Equal(t, "rafi.png", st.Author.Photo)
}

func TestProfileUpdateOfAnotherUserIsForbidden(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	s.seedUser(t, "guide@example.com", models.RoleGuide)
	cookie := s.login(t, "ana@example.com")

	rec := s.do(t, http.MethodPatch, "/users/profile/guide@example.com", gin.H{"name": "Mallory"}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	u, err := s.stores.Users.GetByEmail(context.Background(), "guide@example.com")
	require.NoError(t, err)
	assert.Equal(t, "guide@example.com", u.Name)
}

func TestGuideApplicationApprovedByAdmin(t *testing.T) {
	s := newServer(t)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	s.seedUser(t, "admin@example.com", models.RoleAdmin)

	tourist := s.login(t, "ana@example.com")
	rec := s.do(t, http.MethodPatch, "/users/ana@example.com", gin.H{"title": "Hiker", "reason": "Love hills", "cvLink": "https://cv"}, tourist)
	require.Equal(t, http.StatusOK, rec.Code)

	admin := s.login(t, "admin@example.com")
	rec = s.do(t, http.MethodGet, "/manage-candidates", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	var candidates []models.User
	decode(t, rec, &candidates)
	require.Len(t, candidates, 1)

	rec = s.do(t, http.MethodPatch, "/manage-candidates/ana@example.com", gin.H{"action": "approve"}, admin)
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := s.stores.Users.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuide, u.Role)
	assert.Equal(t, models.StatusApproved, u.Status)
}

func TestAdminStats(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()
	s.seedUser(t, "admin@example.com", models.RoleAdmin)
	s.seedUser(t, "guide@example.com", models.RoleGuide)
	s.seedUser(t, "ana@example.com", models.RoleTourist)
	require.NoError(t, s.stores.Bookings.Create(ctx, &models.Booking{TouristEmail: "ana@example.com", TotalPrice: "100"}))
	require.NoError(t, s.stores.Bookings.Create(ctx, &models.Booking{TouristEmail: "ana@example.com", TotalPrice: 50.5}))
	cookie := s.login(t, "admin@example.com")

	rec := s.do(t, http.MethodGet, "/api/admin/stats", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.AdminStats
	decode(t, rec, &got)
	assert.InDelta(t, 150.5, got.TotalPayment, 1e-9)
	assert.Equal(t, int64(1), got.TotalGuides)
	assert.Equal(t, int64(1), got.TotalClients)
}

func TestUploadRoutesAbsentWithoutMedia(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/uploads/images", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
