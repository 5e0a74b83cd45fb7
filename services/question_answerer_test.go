package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobpilot/models"
)

func answererJob() *models.JobData {
	return &models.JobData{
		Title:   "Backend Engineer",
		Company: "Acme",
		CustomQuestions: []models.CustomQuestion{
			{ID: "q1", Question: "Why do you want to work at Acme?"},
			{ID: "q2", Question: "Describe a production incident you handled."},
		},
	}
}

func TestAnswerAllBatchesMultipleQuestions(t *testing.T) {
	ai := &fakeAI{responses: []string{
		"```json\n[{\"question\": \"Why do you want to work at Acme?\", \"answer\": \"I admire the platform.\"}," +
			"{\"question\": \"Describe a production incident you handled.\", \"answer\": \"A cascading cache failure.\"}]\n```",
	}}
	job := answererJob()

	answered, err := NewQuestionAnswerer(ai, nil).AnswerAll(job, testProfile())

	assert.NoError(t, err)
	assert.Equal(t, 2, answered)
	assert.Equal(t, 1, ai.calls, "both questions answered in one batched call")
	assert.Equal(t, "I admire the platform.", job.CustomQuestions[0].Answer)
	assert.Equal(t, "A cascading cache failure.", job.CustomQuestions[1].Answer)
}

func TestAnswerAllFallsBackToIndividualOnUnparseableBatch(t *testing.T) {
	ai := &fakeAI{responses: []string{
		"Sure! Here are my thoughts on the questions.",
		"Because the mission resonates with me.",
		"I led the rollback of a bad schema migration.",
	}}
	job := answererJob()

	answered, err := NewQuestionAnswerer(ai, nil).AnswerAll(job, testProfile())

	assert.NoError(t, err)
	assert.Equal(t, 2, answered)
	assert.Equal(t, 3, ai.calls, "one failed batch plus two individual calls")
	assert.Equal(t, "Because the mission resonates with me.", job.CustomQuestions[0].Answer)
	assert.Equal(t, "I led the rollback of a bad schema migration.", job.CustomQuestions[1].Answer)
}

func TestAnswerAllSkipsAlreadyAnswered(t *testing.T) {
	ai := &fakeAI{responses: []string{"New answer"}}
	job := answererJob()
	job.CustomQuestions[0].Answer = "Existing answer"

	answered, err := NewQuestionAnswerer(ai, nil).AnswerAll(job, testProfile())

	assert.NoError(t, err)
	assert.Equal(t, 1, answered)
	assert.Equal(t, "Existing answer", job.CustomQuestions[0].Answer, "existing answers are never overwritten")
	assert.Equal(t, "New answer", job.CustomQuestions[1].Answer)
	assert.Equal(t, 1, ai.calls, "a single unanswered question skips the batch call")
}

func TestAnswerAllNoQuestions(t *testing.T) {
	ai := &fakeAI{}
	job := &models.JobData{Title: "Backend Engineer"}

	answered, err := NewQuestionAnswerer(ai, nil).AnswerAll(job, testProfile())

	assert.NoError(t, err)
	assert.Zero(t, answered)
	assert.Zero(t, ai.calls)
}

func TestAnswerAllWithoutAI(t *testing.T) {
	job := answererJob()

	_, err := NewQuestionAnswerer(nil, nil).AnswerAll(job, testProfile())

	assert.ErrorIs(t, err, ErrAIUnavailable)
	assert.Empty(t, job.CustomQuestions[0].Answer)
}

func TestAnswerBatchIncludesFewShotExamples(t *testing.T) {
	ai := &fakeAI{responses: []string{"[]", "a", "b"}}
	examples := []models.CustomQuestion{
		{Question: "Why this team?", Answer: "I like hard infrastructure problems."},
	}
	job := answererJob()

	_, err := NewQuestionAnswerer(ai, examples).AnswerAll(job, testProfile())

	assert.NoError(t, err)
	assert.Contains(t, ai.prompts[0], "I like hard infrastructure problems.")
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[{"a":1}]`, extractJSONArray("Here you go: [{\"a\":1}] hope that helps"))
	assert.Equal(t, `[1, 2]`, extractJSONArray("```json\n[1, 2]\n```"))
	assert.Equal(t, "no array here", extractJSONArray("no array here"))
}
