package httpapi

import (
	"sala-api/domain"

	"github.com/samber/lo"
)

// timeLayout renders the post time for display. Not sortable across date
// boundaries, which is an accepted limitation of the wire format.
const timeLayout = "15:04:05"

type participantResponse struct {
	Name       string `json:"name"`
	LastStatus int64  `json:"lastStatus"`
}

type messageResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
	Type string `json:"type"`
	Time string `json:"time"`
}

func toParticipantResponses(participants []domain.Participant) []participantResponse {
	return lo.Map(participants, func(item domain.Participant, _ int) participantResponse {
		return participantResponse{
			Name:       item.Name,
			LastStatus: item.LastStatus.UnixMilli(),
		}
	})
}

func toMessageResponses(messages []domain.Message) []messageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) messageResponse {
		return messageResponse{
			From: item.From,
			To:   item.To,
			Text: item.Text,
			Type: string(item.Type),
			Time: item.At.Format(timeLayout),
		}
	})
}
