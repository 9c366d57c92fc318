package synthesizer

import (
	"fmt"

	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/intent"
)

const capabilitiesNote = "매장 프로필 조회, 매출 분석, 마케팅 아이디어, " +
	"실행 플랜 카드, 교육 영상과 지원 정책 추천을 도와드릴 수 있어요."

// Responder answers greetings and unclassifiable questions with fixed
// text. No model call is made on this path.
type Responder struct{}

// NewResponder creates a fixed-text responder.
func NewResponder() *Responder {
	return &Responder{}
}

// Respond returns the canned reply for the classified intent. A bound
// profile personalizes the greeting with the store name.
func (r *Responder) Respond(state *conversation.State, classified intent.Intent) string {
	if classified == intent.Greeting {
		if state.CurrentProfile != nil && state.CurrentProfile.StoreName() != "" {
			return fmt.Sprintf("안녕하세요, %s 사장님! 무엇을 도와드릴까요? %s",
				state.CurrentProfile.StoreName(), capabilitiesNote)
		}
		return "안녕하세요, 사장님! 무엇을 도와드릴까요? " + capabilitiesNote
	}
	return "질문을 잘 이해하지 못했어요. " + capabilitiesNote
}
