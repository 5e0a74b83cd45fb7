package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"jobpilot/models"
)

// QuestionAnswerer resolves platform-specific free-form questions through
// the AI provider. Multiple questions are batched into one call for
// cross-question consistency; a parse failure falls back to answering each
// question individually.
type QuestionAnswerer struct {
	ai       AIProvider
	examples []models.CustomQuestion // answered questions from prior applications
}

func NewQuestionAnswerer(ai AIProvider, examples []models.CustomQuestion) *QuestionAnswerer {
	return &QuestionAnswerer{ai: ai, examples: examples}
}

type batchedAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerAll fills the Answer of every unanswered custom question on the job.
// Each question's answer is written at most once. Partial failure is not an
// error: unanswerable questions are left empty and reported in the count.
func (qa *QuestionAnswerer) AnswerAll(job *models.JobData, profile *models.Profile) (answered int, err error) {
	unanswered := 0
	for _, q := range job.CustomQuestions {
		if q.Answer == "" {
			unanswered++
		}
	}
	if unanswered == 0 {
		return 0, nil
	}
	if qa.ai == nil || !qa.ai.IsAvailable() {
		return 0, ErrAIUnavailable
	}

	if unanswered > 1 {
		answered = qa.answerBatch(job, profile)
	}

	// Final pass: anything still empty is answered individually.
	for i := range job.CustomQuestions {
		q := &job.CustomQuestions[i]
		if q.Answer != "" {
			continue
		}
		answer, err := qa.answerOne(*q, job, profile)
		if err != nil {
			log.Printf("Could not answer question %q: %v", q.Question, err)
			continue
		}
		q.Answer = answer
		answered++
	}

	return answered, nil
}

func (qa *QuestionAnswerer) answerBatch(job *models.JobData, profile *models.Profile) int {
	var sb strings.Builder
	sb.WriteString("Answer the following job application questions on behalf of the candidate.\n")
	sb.WriteString("Respond with ONLY a JSON array of objects: [{\"question\": \"...\", \"answer\": \"...\"}].\n")
	sb.WriteString("Keep answers consistent with each other.\n\n")
	sb.WriteString(qa.contextBlock(job, profile))

	if len(qa.examples) > 0 {
		sb.WriteString("\nAnswers the candidate gave on previous applications, match their style:\n")
		for i, ex := range qa.examples {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", ex.Question, ex.Answer)
		}
	}

	sb.WriteString("\nQuestions:\n")
	for _, q := range job.CustomQuestions {
		if q.Answer != "" {
			continue
		}
		fmt.Fprintf(&sb, "- %s", q.Question)
		if len(q.Options) > 0 {
			fmt.Fprintf(&sb, " (options: %s)", strings.Join(q.Options, " | "))
		}
		sb.WriteString("\n")
	}

	response, err := qa.ai.GenerateText(sb.String(), "")
	if err != nil {
		log.Printf("Batched question call failed, falling back to individual answers: %v", err)
		return 0
	}

	var parsed []batchedAnswer
	if err := json.Unmarshal([]byte(extractJSONArray(response)), &parsed); err != nil {
		log.Printf("Could not parse batched answers, falling back to individual answers: %v", err)
		return 0
	}

	answered := 0
	for i := range job.CustomQuestions {
		q := &job.CustomQuestions[i]
		if q.Answer != "" {
			continue
		}
		for _, p := range parsed {
			if questionsMatch(q.Question, p.Question) && p.Answer != "" {
				q.Answer = strings.TrimSpace(p.Answer)
				answered++
				break
			}
		}
	}
	return answered
}

func (qa *QuestionAnswerer) answerOne(q models.CustomQuestion, job *models.JobData, profile *models.Profile) (string, error) {
	var sb strings.Builder
	sb.WriteString("Answer this job application question on behalf of the candidate.\n")
	sb.WriteString("Respond with only the answer text, no explanation.\n\n")
	sb.WriteString(qa.contextBlock(job, profile))
	fmt.Fprintf(&sb, "\nQuestion: %s\n", q.Question)
	if len(q.Options) > 0 {
		fmt.Fprintf(&sb, "Answer with exactly one of: %s\n", strings.Join(q.Options, " | "))
	}

	answer, err := qa.ai.GenerateText(sb.String(), "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(StripCodeFences(answer)), nil
}

func (qa *QuestionAnswerer) contextBlock(job *models.JobData, profile *models.Profile) string {
	return fmt.Sprintf(`Candidate:
- Name: %s
- Skills: %s
- Current role: %s at %s

Job: %s at %s
Key requirements: %s
`, profile.Name, strings.Join(profile.Skills, ", "),
		profile.CurrentTitle(), profile.CurrentCompany(),
		job.Title, job.Company, strings.Join(job.Requirements, "; "))
}

// extractJSONArray pulls the first JSON array out of a model response that
// may be wrapped in prose or code fences.
func extractJSONArray(text string) string {
	text = StripCodeFences(text)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func questionsMatch(a, b string) bool {
	return NormalizeAnswerKey(a) == NormalizeAnswerKey(b)
}
