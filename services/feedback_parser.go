package services

import (
	"strconv"
	"strings"

	"sales-feedback-server/apperrors"
)

// ParsedFeedback is the structured form of a raw feedback reply.
type ParsedFeedback struct {
	Rating  float64
	Comment string
}

// ParseFeedbackMessage extracts the rating and comment from a raw WhatsApp
// reply. The rating is the first whitespace-separated token parsed as a
// float; everything after it is the comment. Range is not validated — an
// out-of-range or negative rating is stored as sent.
func ParseFeedbackMessage(message string) (ParsedFeedback, error) {
	fields := strings.Fields(message)
	if len(fields) == 0 {
		return ParsedFeedback{}, apperrors.NewBadRequest("Invalid feedback format")
	}

	rating, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return ParsedFeedback{}, apperrors.NewBadRequest("Invalid feedback format")
	}

	return ParsedFeedback{
		Rating:  rating,
		Comment: strings.Join(fields[1:], " "),
	}, nil
}
