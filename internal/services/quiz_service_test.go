package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quizhub-io/quiz-service/internal/events"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

func newQuizServiceForTest(repo *fakeRepository) (QuizService, *events.MockEventPublisher) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	return NewQuizService(repo, nil, logger, validator.New(), publisher), publisher
}

func TestQuizService_GetQuiz_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newQuizServiceForTest(repo)

	_, err := svc.GetQuiz(context.Background(), 42)
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizService_GetQuestions_DecoratesSubject(t *testing.T) {
	repo := newFakeRepository()
	repo.subjects[3] = &models.Subject{ID: 3, Name: "Geography", Color: "#00ff00"}
	repo.questions[1] = &models.Question{ID: 1, QuizID: 7, SubjectID: 3, QuestionText: "Capital of France?", OrderNum: 1}
	repo.questions[2] = &models.Question{ID: 2, QuizID: 7, SubjectID: 99, QuestionText: "Longest river?", OrderNum: 2}
	svc, _ := newQuizServiceForTest(repo)

	questions, err := svc.GetQuestionsByQuiz(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].SubjectName != "Geography" || questions[0].SubjectColor != "#00ff00" {
		t.Errorf("expected subject decoration, got %q/%q", questions[0].SubjectName, questions[0].SubjectColor)
	}
	if questions[1].SubjectName != "" {
		t.Errorf("missing subject should leave name empty, got %q", questions[1].SubjectName)
	}
}

func TestQuizService_StartAttempt_TeacherForbidden(t *testing.T) {
	repo := newFakeRepository()
	repo.users[5] = &models.User{ID: 5, Username: "prof", Role: models.RoleTeacher}
	svc, _ := newQuizServiceForTest(repo)

	_, err := svc.StartAttempt(context.Background(), 1, 5)

	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("expected PermissionError, got %v", err)
	}
	if len(repo.attempts) != 0 {
		t.Errorf("no attempt row should exist, found %d", len(repo.attempts))
	}
}

func TestQuizService_StartAttempt_UnknownUserAllowed(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newQuizServiceForTest(repo)

	attempt, err := svc.StartAttempt(context.Background(), 2, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempt.ID == 0 {
		t.Error("attempt should be persisted with an id")
	}
	if attempt.Completed {
		t.Error("new attempt must not be completed")
	}
	if attempt.QuizID != 2 || attempt.UserID != 999 {
		t.Errorf("attempt references wrong quiz/user: %d/%d", attempt.QuizID, attempt.UserID)
	}
}

func TestQuizService_StartAttempt_UserLookupErrorSurfaces(t *testing.T) {
	repo := newFakeRepository()
	repo.failUserGetByID = true
	svc, _ := newQuizServiceForTest(repo)

	// An infrastructure failure on the role lookup must fail the call
	// rather than skipping the teacher check.
	_, err := svc.StartAttempt(context.Background(), 1, 5)
	if err == nil {
		t.Fatal("expected error when user lookup fails")
	}
	var perm *PermissionError
	if errors.As(err, &perm) {
		t.Fatalf("lookup failure is not a permission problem: %v", err)
	}
	if len(repo.attempts) != 0 {
		t.Errorf("no attempt row should exist, found %d", len(repo.attempts))
	}
}

func TestQuizService_SaveAnswer_MissingFields(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newQuizServiceForTest(repo)

	qid := uint(1)
	cases := []struct {
		name string
		req  SaveAnswerRequest
	}{
		{"missing both", SaveAnswerRequest{}},
		{"missing option", SaveAnswerRequest{QuestionID: &qid}},
		{"missing question", SaveAnswerRequest{SelectedOptionID: &qid}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SaveAnswer(context.Background(), 1, &tc.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestQuizService_SaveAnswer_CopiesCorrectness(t *testing.T) {
	repo := newFakeRepository()
	repo.options[10] = &models.QuestionOption{ID: 10, QuestionID: 1, OptionText: "Paris", IsCorrect: true}
	svc, _ := newQuizServiceForTest(repo)

	qid, oid := uint(1), uint(10)
	answer, err := svc.SaveAnswer(context.Background(), 1, &SaveAnswerRequest{QuestionID: &qid, SelectedOptionID: &oid})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !answer.IsCorrect {
		t.Error("answer should copy IsCorrect from the selected option")
	}
}

func TestQuizService_SaveAnswer_UnknownOptionRecordsWrong(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newQuizServiceForTest(repo)

	qid, oid := uint(1), uint(777)
	answer, err := svc.SaveAnswer(context.Background(), 1, &SaveAnswerRequest{QuestionID: &qid, SelectedOptionID: &oid})
	if err != nil {
		t.Fatalf("unknown option must not fail the call: %v", err)
	}
	if answer.IsCorrect {
		t.Error("unknown option must record a wrong answer")
	}
	if answer.SelectedOptionID != 777 {
		t.Errorf("selected option id should be stored as sent, got %d", answer.SelectedOptionID)
	}
}

func TestQuizService_CompleteAttempt_Scoring(t *testing.T) {
	repo := newFakeRepository()
	start := time.Now().Add(-90 * time.Second)
	repo.attempts[1] = &models.QuizAttempt{ID: 1, QuizID: 3, UserID: 8, StartTime: start}
	repo.nextAttemptID = 2
	svc, publisher := newQuizServiceForTest(repo)

	// Three answers, two correct.
	for i, correct := range []bool{true, false, true} {
		repo.answers[uint(i+1)] = &models.UserAnswer{
			ID:            uint(i + 1),
			QuizAttemptID: 1,
			QuestionID:    uint(i + 1),
			IsCorrect:     correct,
		}
	}
	repo.nextAnswerID = 4

	attempt, err := svc.CompleteAttempt(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !attempt.Completed {
		t.Error("attempt should be completed")
	}
	if attempt.EndTime == nil {
		t.Fatal("end time should be set")
	}
	if attempt.Score == nil || *attempt.Score != 2 {
		t.Errorf("expected score 2, got %v", attempt.Score)
	}
	if attempt.CorrectAnswers == nil || *attempt.CorrectAnswers != 2 {
		t.Errorf("expected 2 correct answers, got %v", attempt.CorrectAnswers)
	}
	if attempt.TotalQuestions == nil || *attempt.TotalQuestions != 3 {
		t.Errorf("expected 3 total questions, got %v", attempt.TotalQuestions)
	}
	if attempt.TimeSpentSeconds == nil || *attempt.TimeSpentSeconds < 89 {
		t.Errorf("time spent should reflect elapsed time, got %v", attempt.TimeSpentSeconds)
	}

	published := publisher.Events()
	if len(published) != 1 || published[0].Topic != events.TopicAttemptCompleted {
		t.Errorf("expected one attempt-completed event, got %+v", published)
	}
}

func TestQuizService_CompleteAttempt_RecomputesOnSecondCall(t *testing.T) {
	repo := newFakeRepository()
	repo.attempts[1] = &models.QuizAttempt{ID: 1, QuizID: 1, UserID: 1, StartTime: time.Now()}
	repo.nextAttemptID = 2
	svc, _ := newQuizServiceForTest(repo)

	repo.answers[1] = &models.UserAnswer{ID: 1, QuizAttemptID: 1, QuestionID: 1, IsCorrect: true}
	repo.nextAnswerID = 2

	first, err := svc.CompleteAttempt(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first.Score != 1 {
		t.Fatalf("expected score 1 after first completion, got %d", *first.Score)
	}

	// Another answer lands after completion; a second complete call
	// recomputes rather than rejecting.
	repo.answers[2] = &models.UserAnswer{ID: 2, QuizAttemptID: 1, QuestionID: 2, IsCorrect: true}

	second, err := svc.CompleteAttempt(context.Background(), 1)
	if err != nil {
		t.Fatalf("re-completion should succeed: %v", err)
	}
	if *second.Score != 2 || *second.TotalQuestions != 2 {
		t.Errorf("expected recomputed score 2/2, got %d/%d", *second.Score, *second.TotalQuestions)
	}
}

func TestQuizService_CompleteAttempt_NotFound(t *testing.T) {
	repo := newFakeRepository()
	svc, _ := newQuizServiceForTest(repo)

	_, err := svc.CompleteAttempt(context.Background(), 404)
	if !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}

func TestQuizService_AttemptSummaries_JoinsBestEffort(t *testing.T) {
	repo := newFakeRepository()
	score := 4
	repo.users[1] = &models.User{ID: 1, Username: "ada", Email: "ada@example.local"}
	repo.quizzes[2] = &models.Quiz{ID: 2, Title: "Algebra Basics"}
	repo.attempts[1] = &models.QuizAttempt{ID: 1, QuizID: 2, UserID: 1, Score: &score, Completed: true, StartTime: time.Now()}
	// Attempt 2 references a user and quiz that no longer exist.
	repo.attempts[2] = &models.QuizAttempt{ID: 2, QuizID: 99, UserID: 99, StartTime: time.Now()}
	repo.nextAttemptID = 3
	svc, _ := newQuizServiceForTest(repo)

	summaries, err := svc.AttemptSummaries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	joined := summaries[0]
	if joined.Username != "ada" || joined.QuizTitle != "Algebra Basics" {
		t.Errorf("expected joined metadata, got %q/%q", joined.Username, joined.QuizTitle)
	}
	if joined.Score == nil || *joined.Score != 4 {
		t.Errorf("expected score 4, got %v", joined.Score)
	}

	orphan := summaries[1]
	if orphan.Username != "" || orphan.QuizTitle != "" {
		t.Errorf("orphan attempt should keep bare fields, got %q/%q", orphan.Username, orphan.QuizTitle)
	}
}
