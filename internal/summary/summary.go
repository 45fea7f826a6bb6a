// Copyright (c) 2026 Promptstash Contributors
// All rights reserved. See LICENSE for details.

// Package summary derives a short human-readable label for a prompt
// that has no explicit description. The classifier is a pure function:
// ordered keyword patterns are scanned over the prompt text and the
// first match wins, so rule order acts as priority.
package summary

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// defaultIntent is the sentinel used when no intent rule matches.
const defaultIntent = "Help with"

// defaultTopic is used when no topic rule matches body or title.
const defaultTopic = "task"

// maxTitleSummaryLen is the longest title returned verbatim as a summary.
const maxTitleSummaryLen = 60

type rule struct {
	pattern *regexp.Regexp
	label   string
}

// intentRules map action keywords to an intent verb. Order matters:
// earlier rules shadow later ones.
var intentRules = []rule{
	{regexp.MustCompile(`analy[sz]e|analysis|assess|evaluate`), "Analyze"},
	{regexp.MustCompile(`\bplan\b|planning|roadmap|schedule|timeline`), "Plan"},
	{regexp.MustCompile(`write|draft|compose`), "Write"},
	{regexp.MustCompile(`brainstorm|ideate|come up with ideas`), "Brainstorm"},
	{regexp.MustCompile(`decide|decision|choose between|should (i|we)`), "Decide"},
	{regexp.MustCompile(`compare|versus|\bvs\b|trade-?offs?`), "Compare"},
	{regexp.MustCompile(`summari[sz]e|summary|tl;?dr|condense`), "Summarize"},
	{regexp.MustCompile(`explain|clarify|break down|what is|what are`), "Explain"},
	{regexp.MustCompile(`research|investigate|find out|look into`), "Research"},
	{regexp.MustCompile(`optimi[sz]e|improve|streamline|make .* (faster|better)`), "Optimize"},
	{regexp.MustCompile(`solve|fix|resolve|troubleshoot|debug`), "Solve"},
	{regexp.MustCompile(`design|architect|prototype|mock-?up`), "Design"},
	{regexp.MustCompile(`negotiat|bargain|counter-?offer`), "Negotiate"},
	{regexp.MustCompile(`present|pitch|slides?|deck`), "Present"},
	{regexp.MustCompile(`organi[sz]e|structure|arrange|prioriti[sz]e`), "Organize"},
}

// topicRules map subject keywords to a topic noun. Order matters.
var topicRules = []rule{
	{regexp.MustCompile(`project|initiative|launch`), "project"},
	{regexp.MustCompile(`team|staff|employee|hiring|onboarding`), "team"},
	{regexp.MustCompile(`strateg|vision|long-?term|positioning`), "strategy"},
	{regexp.MustCompile(`budget|cost|spend|expense|financ`), "budget"},
	{regexp.MustCompile(`customer|client|churn|retention`), "customer"},
	{regexp.MustCompile(`market|competit|industry|pricing`), "market"},
	{regexp.MustCompile(`process|workflow|procedure|pipeline`), "process"},
	{regexp.MustCompile(`stakeholder|board|investor|sponsor`), "stakeholders"},
	{regexp.MustCompile(`meeting|sync|standup|agenda|1:1`), "meeting"},
	{regexp.MustCompile(`risk|threat|mitigat|contingenc`), "risks"},
}

// Generate returns a one-line summary for a prompt. The result is
// always non-empty: when nothing matches, the title (if short enough)
// or a generic guidance label is returned.
func Generate(title, body string) string {
	lowered := strings.ToLower(body)

	intent := defaultIntent
	for _, r := range intentRules {
		if r.pattern.MatchString(lowered) {
			intent = r.label
			break
		}
	}

	topic := matchTopic(lowered)
	if topic == "" {
		// Fall back to the title when the body names no subject.
		topic = matchTopic(strings.ToLower(title))
	}
	if topic == "" {
		topic = defaultTopic
	}

	if intent == defaultIntent {
		if title != "" && utf8.RuneCountInString(title) < maxTitleSummaryLen {
			return title
		}
		return "Guide " + topic + " decisions and actions"
	}

	return intent + " " + topic + " systematically"
}

// matchTopic runs the ordered topic scan over already-lowered text.
// Returns "" when nothing matches.
func matchTopic(lowered string) string {
	for _, r := range topicRules {
		if r.pattern.MatchString(lowered) {
			return r.label
		}
	}
	return ""
}
