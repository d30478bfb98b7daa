package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/careconnect/careconnect-api/internal/constants"
	"github.com/careconnect/careconnect-api/internal/database"
	"github.com/careconnect/careconnect-api/internal/dto"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/careconnect/careconnect-api/internal/repository"
	"github.com/careconnect/careconnect-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AppointmentHandlerTestSuite defines the test suite for AppointmentHandler
type AppointmentHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handler     *AppointmentHandler
	authService *services.AuthService
}

// SetupTest runs before each test
func (suite *AppointmentHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Caregiver{},
		&models.Member{},
		&models.Address{},
		&models.Job{},
		&models.JobApplication{},
		&models.Appointment{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	cgRepo := repository.NewCaregiverRepository(suite.db)
	apptRepo := repository.NewAppointmentRepository(suite.db)

	suite.authService = services.NewAuthService(userRepo)
	apptService := services.NewAppointmentService(apptRepo, cgRepo, userRepo)
	suite.handler = NewAppointmentHandler(apptService, suite.authService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AppointmentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AppointmentHandlerTestSuite) createTestMember(email, phone string) *models.User {
	user, err := suite.authService.Register(services.RegisterInput{
		Email:       email,
		GivenName:   "Member",
		Surname:     "User",
		PhoneNumber: phone,
		Password:    "Sup3rSecret!",
		Member: &services.MemberInput{
			Address: services.AddressInput{
				HouseNumber: "12",
				Street:      "Turan Avenue",
				Town:        "Astana",
			},
		},
	})
	suite.Require().NoError(err)
	return user
}

func (suite *AppointmentHandlerTestSuite) createTestCaregiver(email, phone string) *models.User {
	user, err := suite.authService.Register(services.RegisterInput{
		Email:       email,
		GivenName:   "Caregiver",
		Surname:     "User",
		PhoneNumber: phone,
		Password:    "Sup3rSecret!",
		Caregiver: &services.CaregiverInput{
			CaregivingType: string(models.CaregivingTypeBabysitter),
			HourlyRate:     10.00,
		},
	})
	suite.Require().NoError(err)
	return user
}

// Helper function to create authenticated context
func (suite *AppointmentHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func (suite *AppointmentHandlerTestSuite) requestBody(caregiverID uint64) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"caregiver_id":     caregiverID,
		"appointment_date": time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		"appointment_time": "14:30",
		"work_hours":       3.5,
	})
	return body
}

// TestRequest_Success tests a member booking an appointment
func (suite *AppointmentHandlerTestSuite) TestRequest_Success() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), member.ID)

	suite.handler.Request(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.AppointmentDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.AppointmentStatusPending, response.Status)
	assert.Equal(suite.T(), member.ID, response.MemberID)
	assert.Equal(suite.T(), caregiver.ID, response.CaregiverID)
}

// TestRequest_NotMember tests booking by a user without the member role
func (suite *AppointmentHandlerTestSuite) TestRequest_NotMember() {
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), caregiver.ID)

	suite.handler.Request(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestRequest_PastDate tests that a past date is rejected
func (suite *AppointmentHandlerTestSuite) TestRequest_PastDate() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	body, _ := json.Marshal(map[string]interface{}{
		"caregiver_id":     caregiver.ID,
		"appointment_date": "2020-01-01",
		"appointment_time": "14:30",
		"work_hours":       3.5,
	})
	c, w := suite.createAuthContext("POST", "/api/appointments", body, member.ID)

	suite.handler.Request(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestRespond_AcceptFlow tests the accept transition and its terminality
func (suite *AppointmentHandlerTestSuite) TestRespond_AcceptFlow() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), member.ID)
	suite.handler.Request(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created dto.AppointmentDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))

	body, _ := json.Marshal(map[string]string{"action": "accept"})
	c, w = suite.createAuthContext("POST", "/api/appointments/1/respond", body, caregiver.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.AppointmentDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.AppointmentStatusAccepted, response.Status)

	// A second response hits a terminal appointment.
	c, w = suite.createAuthContext("POST", "/api/appointments/1/respond", body, caregiver.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestRespond_WrongCaregiver tests responding to someone else's appointment
func (suite *AppointmentHandlerTestSuite) TestRespond_WrongCaregiver() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")
	intruder := suite.createTestCaregiver("intruder@example.com", "+7 701 000 0003")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), member.ID)
	suite.handler.Request(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	body, _ := json.Marshal(map[string]string{"action": "accept"})
	c, w = suite.createAuthContext("POST", "/api/appointments/1/respond", body, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestRespond_UnknownAction tests an action outside accept/decline
func (suite *AppointmentHandlerTestSuite) TestRespond_UnknownAction() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), member.ID)
	suite.handler.Request(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	body, _ := json.Marshal(map[string]string{"action": "postpone"})
	c, w = suite.createAuthContext("POST", "/api/appointments/1/respond", body, caregiver.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	suite.handler.Respond(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListMine tests listing the caller's appointments by role
func (suite *AppointmentHandlerTestSuite) TestListMine() {
	member := suite.createTestMember("member@example.com", "+7 701 000 0001")
	caregiver := suite.createTestCaregiver("cg@example.com", "+7 701 000 0002")

	c, w := suite.createAuthContext("POST", "/api/appointments", suite.requestBody(caregiver.ID), member.ID)
	suite.handler.Request(c)
	suite.Require().Equal(http.StatusCreated, w.Code)

	c, w = suite.createAuthContext("GET", "/api/appointments/mine", nil, member.ID)
	suite.handler.ListMine(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string][]dto.AppointmentDTO
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["appointments"], 1)

	c, w = suite.createAuthContext("GET", "/api/appointments/mine", nil, caregiver.ID)
	c.Request.URL.RawQuery = "role=caregiver"
	suite.handler.ListMine(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(suite.T(), response["appointments"], 1)
}

// TestSuite runs the test suite
func TestAppointmentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}
