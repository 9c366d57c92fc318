// Package classifier implements intent classification: a few-shot LLM
// classifier backed by a deterministic keyword cascade that also serves
// as the offline fallback.
package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/merchantlab/consult-go/domain/intent"
)

// maskedNamePattern matches masked store references like {고향***}.
var maskedNamePattern = regexp.MustCompile(`\{.+\*+\}`)

// rule maps keywords to an intent. Rules are evaluated in order; the
// first hit wins.
type rule struct {
	intent   intent.Intent
	keywords []string
}

var fallbackRules = []rule{
	{intent.ProfileQuery, []string{"프로필", "내 정보", "가게 정보", "profile"}},
	{intent.BigconRequest, []string{"빅콘", "bigcon", "공모전"}},
	{intent.DataAnalysis, []string{"매출", "분석", "요일별", "시간대별", "데이터", "통계"}},
	{intent.MarketingIdea, []string{"마케팅", "홍보", "이벤트", "아이디어", "sns", "광고"}},
	{intent.VideoRecommendation, []string{"영상", "동영상", "유튜브", "video"}},
	{intent.PolicyRecommendation, []string{"정책", "지원금", "보조금", "대출", "정부지원"}},
	{intent.GeneralRAGSearch, []string{"방법", "어떻게", "사례", "전략", "팁", "노하우"}},
	{intent.Greeting, []string{"안녕", "반가워", "hello", "hi "}},
}

// FallbackClassifier classifies by keyword cascade. It needs no model
// and always succeeds.
type FallbackClassifier struct{}

// NewFallbackClassifier creates a deterministic classifier.
func NewFallbackClassifier() *FallbackClassifier {
	return &FallbackClassifier{}
}

// Classify implements intent.Classifier.
func (c *FallbackClassifier) Classify(_ context.Context, query string) (intent.Intent, error) {
	return classifyByRules(query), nil
}

func classifyByRules(query string) intent.Intent {
	// A masked store name always means a profile lookup, whatever
	// else the question mentions.
	if maskedNamePattern.MatchString(query) {
		return intent.ProfileQuery
	}

	lowered := strings.ToLower(query)
	for _, r := range fallbackRules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.intent
			}
		}
	}
	return intent.Unknown
}
