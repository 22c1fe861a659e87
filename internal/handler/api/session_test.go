//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/handler/api"
	reqdto "paylink-vending/internal/handler/dto/request"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/tests/common/httptest"
	commandsmock "paylink-vending/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSessionCommands
	handler      *api.SessionHandler
}

func (s *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSessionCommands(s.mockCtrl)
	s.handler = api.NewSessionHandler(s.mockCommands)

	g := s.router.Group("/tenants/:tenant", fakeAuth)
	g.PUT("/session", s.handler.Register)
	g.POST("/session/refresh", s.handler.Refresh)
}

func (s *SessionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionHandlerSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}

func (s *SessionHandlerTestSuite) TestRegister() {
	url := "/tenants/guild-1/session"
	reqBody := reqdto.RegisterSessionRequest{AccessToken: "access-1", RefreshToken: "refresh-1"}

	s.Run("正常系: 204", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "guild-1",
			session.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("異常系: アクセストークンなしは400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqdto.RegisterSessionRequest{RefreshToken: "r"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("異常系: パスフレーズ未設定は503", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), "guild-1", gomock.Any()).
			Return(errs.Mark(errs.New("VAULT_PASSPHRASE is empty"), errs.ErrConfigMissing)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "Vending is not configured")
	})
}

func (s *SessionHandlerTestSuite) TestRefresh() {
	url := "/tenants/guild-1/session/refresh"

	testCases := []struct {
		name           string
		commandsError  error
		expectedStatus int
		expectedMsg    string
	}{
		{name: "session expired", commandsError: errs.Mark(errs.New("400"), errs.ErrSessionExpired), expectedStatus: http.StatusBadGateway, expectedMsg: "session expired"},
		{name: "not registered", commandsError: errs.Mark(errs.New("no session"), errs.ErrConfigMissing), expectedStatus: http.StatusServiceUnavailable, expectedMsg: "not configured"},
		{name: "crypto error", commandsError: errs.Mark(errs.New("auth failed"), errs.ErrCrypto), expectedStatus: http.StatusInternalServerError, expectedMsg: "could not be opened"},
	}

	s.Run("正常系: 204", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), "guild-1").Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().Refresh(gomock.Any(), "guild-1").Return(tc.commandsError).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
		})
	}
}
