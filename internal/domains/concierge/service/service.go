package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"merobooking/config"
	"merobooking/infras/otel"
	"merobooking/internal/domains/concierge/model/dto"
	facilityRepo "merobooking/internal/domains/facility/repository"
	roomRepo "merobooking/internal/domains/room/repository"
	"merobooking/shared/constant"
	gDto "merobooking/shared/dto"
)

const (
	fallbackOffline   = "I'm sorry, I'm currently offline (API Key missing). Please contact reception."
	fallbackNetwork   = "I'm having trouble connecting to the network right now."
	fallbackRephrase  = "I didn't catch that. Could you rephrase?"
	chatCompletionURI = "/v1/chat/completions"
)

type Concierge interface {
	Ask(ctx context.Context, req dto.AskRequest) dto.AskResponse
}

type serviceImpl struct {
	facilityRepo facilityRepo.Facility
	roomRepo     roomRepo.Room
	cfg          *config.Config
	otel         otel.Otel
	httpClient   *http.Client
}

func New(facilityRepo facilityRepo.Facility, roomRepo roomRepo.Room, cfg *config.Config, otel otel.Otel) Concierge {
	timeout := time.Duration(cfg.External.Concierge.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &serviceImpl{
		facilityRepo: facilityRepo,
		roomRepo:     roomRepo,
		cfg:          cfg,
		otel:         otel,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// Ask forwards a guest question to the upstream chat model, grounded on the
// live facility and room catalog. It always answers: upstream or catalog
// failures degrade to a polite fallback instead of surfacing an error.
func (s *serviceImpl) Ask(ctx context.Context, req dto.AskRequest) dto.AskResponse {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Ask")
	defer scope.End()

	if s.cfg.External.Concierge.APIKey == constant.Empty {
		return dto.AskResponse{Answer: fallbackOffline}
	}

	systemPrompt, err := s.buildSystemPrompt(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to build concierge context")

		return dto.AskResponse{Answer: fallbackNetwork}
	}

	answer, err := s.complete(ctx, systemPrompt, req.Question)
	if err != nil {
		log.Error().Err(err).Msg("concierge upstream call failed")
		scope.TraceError(err)

		return dto.AskResponse{Answer: fallbackNetwork}
	}

	if answer == constant.Empty {
		return dto.AskResponse{Answer: fallbackRephrase}
	}

	return dto.AskResponse{Answer: answer}
}

func (s *serviceImpl) buildSystemPrompt(ctx context.Context) (string, error) {
	facilities, err := s.facilityRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get facilities: %w", err)
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to get rooms: %w", err)
	}

	facilityNames := make([]string, len(facilities))
	for i, facility := range facilities {
		facilityNames[i] = facility.Name
	}

	roomLines := make([]string, len(rooms))
	for i, room := range rooms {
		roomLines[i] = fmt.Sprintf("%s (NPR %d, sleeps %d)", room.Name, room.PricePerNight, room.Capacity)
	}

	prompt := fmt.Sprintf(`You are a helpful Hotel Concierge for 'Mero-Booking' (formerly known as HotelEase).

Hotel Data:
- Facilities: %s
- Room Types: %s

Answer the guest's question politely and briefly.
If they ask about rooms, suggest the best fit from the list.
If they ask about amenities, check the facilities list.
If you don't know, say "Please check with the front desk."
Always refer to the hotel as "Mero-Booking".`,
		strings.Join(facilityNames, ", "),
		strings.Join(roomLines, "; "),
	)

	return prompt, nil
}

func (s *serviceImpl) complete(ctx context.Context, systemPrompt, question string) (string, error) {
	chatReq := dto.ChatRequest{
		Model: s.cfg.External.Concierge.Model,
		Messages: []dto.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := strings.TrimSuffix(s.cfg.External.Concierge.BaseURL, "/") + chatCompletionURI

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to build chat request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+s.cfg.External.Concierge.APIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to call chat completion: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return constant.Empty, fmt.Errorf("chat completion returned status %d", resp.StatusCode)
	}

	var chatResp dto.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return constant.Empty, fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return constant.Empty, nil
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
