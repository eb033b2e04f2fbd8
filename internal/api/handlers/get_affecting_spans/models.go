package get_affecting_spans

import (
	"time"

	getSpans "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_affecting_spans"
)

// SpanResponse один занятый интервал
type SpanResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AffectingSpansResponse HTTP response model
type AffectingSpansResponse struct {
	ReservationUnitID int64          `json:"reservationUnitId"`
	Spans             []SpanResponse `json:"spans"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSpans.Response) *AffectingSpansResponse {
	spans := make([]SpanResponse, 0, len(resp.Spans))
	for _, span := range resp.Spans {
		spans = append(spans, SpanResponse{
			Start: span.Start.Format(time.RFC3339),
			End:   span.End.Format(time.RFC3339),
		})
	}
	return &AffectingSpansResponse{
		ReservationUnitID: resp.ReservationUnitID,
		Spans:             spans,
	}
}
