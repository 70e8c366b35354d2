package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"merobooking/config"
	"merobooking/infras/otel/mocks"
	"merobooking/internal/domains/concierge/model/dto"
	"merobooking/internal/domains/concierge/service"
	facilityMocks "merobooking/internal/domains/facility/mocks"
	facilityModel "merobooking/internal/domains/facility/model"
	roomModel "merobooking/internal/domains/room/model"
	roomMocks "merobooking/internal/domains/room/mocks"
)

func conciergeConfig(baseURL, apiKey string) *config.Config {
	cfg := &config.Config{}
	cfg.External.Concierge.BaseURL = baseURL
	cfg.External.Concierge.APIKey = apiKey
	cfg.External.Concierge.Model = "gpt-4o-mini"
	cfg.External.Concierge.TimeoutSeconds = 5

	return cfg
}

func catalogMocks(ctrl *gomock.Controller) (*facilityMocks.MockFacility, *roomMocks.MockRoom) {
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)

	mockFacilityRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]facilityModel.Facility{
			{ID: "fac-1", Name: "Infinity Pool", Icon: facilityModel.IconWaves},
		}, nil).
		AnyTimes()

	mockRoomRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]roomModel.Room{
			{ID: "101", Name: "Royal Penthouse Suite", PricePerNight: 350000, Capacity: 4},
		}, nil).
		AnyTimes()

	return mockFacilityRepo, mockRoomRepo
}

func TestConciergeService_Ask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOtel := mocks.NewOtel()

	t.Run("answers from the upstream model", func(t *testing.T) {
		var captured dto.ChatRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"role": "assistant", "content": "  The Infinity Pool is open all day.  "}},
				},
			})
		}))
		defer server.Close()

		mockFacilityRepo, mockRoomRepo := catalogMocks(ctrl)

		svc := service.New(mockFacilityRepo, mockRoomRepo, conciergeConfig(server.URL, "test-key"), mockOtel)

		res := svc.Ask(context.Background(), dto.AskRequest{Question: "Is there a pool?"})

		assert.Equal(t, "The Infinity Pool is open all day.", res.Answer)

		require.Len(t, captured.Messages, 2)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Contains(t, captured.Messages[0].Content, "Infinity Pool")
		assert.Contains(t, captured.Messages[0].Content, "Royal Penthouse Suite (NPR 350000, sleeps 4)")
		assert.Equal(t, "Is there a pool?", captured.Messages[1].Content)
	})

	t.Run("missing api key degrades to the offline fallback", func(t *testing.T) {
		mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
		mockRoomRepo := roomMocks.NewMockRoom(ctrl)

		svc := service.New(mockFacilityRepo, mockRoomRepo, conciergeConfig("http://localhost:1", ""), mockOtel)

		res := svc.Ask(context.Background(), dto.AskRequest{Question: "Is there a pool?"})

		assert.Contains(t, res.Answer, "currently offline")
	})

	t.Run("upstream failure degrades to the network fallback", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		mockFacilityRepo, mockRoomRepo := catalogMocks(ctrl)

		svc := service.New(mockFacilityRepo, mockRoomRepo, conciergeConfig(server.URL, "test-key"), mockOtel)

		res := svc.Ask(context.Background(), dto.AskRequest{Question: "Is there a pool?"})

		assert.Contains(t, res.Answer, "trouble connecting")
	})

	t.Run("catalog failure degrades to the network fallback", func(t *testing.T) {
		mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
		mockRoomRepo := roomMocks.NewMockRoom(ctrl)

		mockFacilityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("connection reset"))

		svc := service.New(mockFacilityRepo, mockRoomRepo, conciergeConfig("http://localhost:1", "test-key"), mockOtel)

		res := svc.Ask(context.Background(), dto.AskRequest{Question: "Is there a pool?"})

		assert.Contains(t, res.Answer, "trouble connecting")
	})

	t.Run("empty choices asks the guest to rephrase", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		mockFacilityRepo, mockRoomRepo := catalogMocks(ctrl)

		svc := service.New(mockFacilityRepo, mockRoomRepo, conciergeConfig(server.URL, "test-key"), mockOtel)

		res := svc.Ask(context.Background(), dto.AskRequest{Question: "Is there a pool?"})

		assert.Contains(t, res.Answer, "rephrase")
	})
}
