package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

// fakeRepository is an in-memory Repository used across service tests.
// Writes can be made to fail per table through the fail* flags.
type fakeRepository struct {
	quizzes  map[uint]*models.Quiz
	subjects map[uint]*models.Subject

	questions map[uint]*models.Question
	options   map[uint]*models.QuestionOption
	attempts  map[uint]*models.QuizAttempt
	answers   map[uint]*models.UserAnswer
	users     map[uint]*models.User
	audits    []*models.AuditEvent

	nextOptionID  uint
	nextAttemptID uint
	nextAnswerID  uint
	nextUserID    uint

	failOptionCreate   bool
	failAnswerCreate   bool
	failQuestionDelete bool
	failUserGetByID    bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		quizzes:       make(map[uint]*models.Quiz),
		subjects:      make(map[uint]*models.Subject),
		questions:     make(map[uint]*models.Question),
		options:       make(map[uint]*models.QuestionOption),
		attempts:      make(map[uint]*models.QuizAttempt),
		answers:       make(map[uint]*models.UserAnswer),
		users:         make(map[uint]*models.User),
		nextOptionID:  1,
		nextAttemptID: 1,
		nextAnswerID:  1,
		nextUserID:    1,
	}
}

func (f *fakeRepository) Quiz() repositories.QuizRepository         { return &fakeQuizRepo{f} }
func (f *fakeRepository) Subject() repositories.SubjectRepository   { return &fakeSubjectRepo{f} }
func (f *fakeRepository) Question() repositories.QuestionRepository { return &fakeQuestionRepo{f} }
func (f *fakeRepository) Option() repositories.OptionRepository     { return &fakeOptionRepo{f} }
func (f *fakeRepository) Attempt() repositories.AttemptRepository   { return &fakeAttemptRepo{f} }
func (f *fakeRepository) Answer() repositories.AnswerRepository     { return &fakeAnswerRepo{f} }
func (f *fakeRepository) User() repositories.UserRepository         { return &fakeUserRepo{f} }
func (f *fakeRepository) Audit() repositories.AuditRepository       { return &fakeAuditRepo{f} }

// WithTransaction snapshots question and option state and restores it when
// fn fails, mirroring a rollback.
func (f *fakeRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	questionsBefore := make(map[uint]*models.Question, len(f.questions))
	for k, v := range f.questions {
		questionsBefore[k] = v
	}
	optionsBefore := make(map[uint]*models.QuestionOption, len(f.options))
	for k, v := range f.options {
		optionsBefore[k] = v
	}

	if err := fn(f); err != nil {
		f.questions = questionsBefore
		f.options = optionsBefore
		return err
	}
	return nil
}

func (f *fakeRepository) Ping(ctx context.Context) error { return nil }
func (f *fakeRepository) Close() error                   { return nil }

type fakeQuizRepo struct{ f *fakeRepository }

func (r *fakeQuizRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.Quiz, error) {
	out := make([]*models.Quiz, 0, len(r.f.quizzes))
	for _, q := range r.f.quizzes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuizRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error) {
	if q, ok := r.f.quizzes[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeSubjectRepo struct{ f *fakeRepository }

func (r *fakeSubjectRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.Subject, error) {
	out := make([]*models.Subject, 0, len(r.f.subjects))
	for _, s := range r.f.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSubjectRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	if s, ok := r.f.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQuestionRepo struct{ f *fakeRepository }

func (r *fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	r.f.questions[question.ID] = question
	return nil
}

func (r *fakeQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	if q, ok := r.f.questions[id]; ok {
		return q, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeQuestionRepo) GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error) {
	var out []*models.Question
	for _, q := range r.f.questions {
		if q.QuizID == quizID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (r *fakeQuestionRepo) GetByOrderNum(ctx context.Context, tx *gorm.DB, orderNum int) ([]*models.Question, error) {
	var out []*models.Question
	for _, q := range r.f.questions {
		if q.OrderNum == orderNum {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	_, ok := r.f.questions[id]
	return ok, nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if r.f.failQuestionDelete {
		return errors.New("forced question delete failure")
	}
	delete(r.f.questions, id)
	return nil
}

type fakeOptionRepo struct{ f *fakeRepository }

func (r *fakeOptionRepo) Create(ctx context.Context, tx *gorm.DB, option *models.QuestionOption) error {
	if r.f.failOptionCreate {
		return errors.New("forced option create failure")
	}
	option.ID = r.f.nextOptionID
	r.f.nextOptionID++
	r.f.options[option.ID] = option
	return nil
}

func (r *fakeOptionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionOption, error) {
	if o, ok := r.f.options[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOptionRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.QuestionOption, error) {
	var out []*models.QuestionOption
	for _, o := range r.f.options {
		if o.QuestionID == questionID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNum < out[j].OrderNum })
	return out, nil
}

func (r *fakeOptionRepo) DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error {
	for id, o := range r.f.options {
		if o.QuestionID == questionID {
			delete(r.f.options, id)
		}
	}
	return nil
}

type fakeAttemptRepo struct{ f *fakeRepository }

func (r *fakeAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	attempt.ID = r.f.nextAttemptID
	r.f.nextAttemptID++
	r.f.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeAttemptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error) {
	if a, ok := r.f.attempts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttemptRepo) Update(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error {
	r.f.attempts[attempt.ID] = attempt
	return nil
}

func (r *fakeAttemptRepo) List(ctx context.Context, tx *gorm.DB) ([]*models.QuizAttempt, error) {
	out := make([]*models.QuizAttempt, 0, len(r.f.attempts))
	for _, a := range r.f.attempts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeAnswerRepo struct{ f *fakeRepository }

func (r *fakeAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *models.UserAnswer) error {
	if r.f.failAnswerCreate {
		return errors.New("forced answer create failure")
	}
	answer.ID = r.f.nextAnswerID
	r.f.nextAnswerID++
	r.f.answers[answer.ID] = answer
	return nil
}

func (r *fakeAnswerRepo) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uint) ([]*models.UserAnswer, error) {
	var out []*models.UserAnswer
	for _, a := range r.f.answers {
		if a.QuizAttemptID == attemptID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAnswerRepo) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.UserAnswer, error) {
	var out []*models.UserAnswer
	for _, a := range r.f.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAnswerRepo) DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error {
	for id, a := range r.f.answers {
		if a.QuestionID == questionID {
			delete(r.f.answers, id)
		}
	}
	return nil
}

type fakeUserRepo struct{ f *fakeRepository }

func (r *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	if r.f.failUserGetByID {
		return nil, errors.New("forced user lookup failure")
	}
	if u, ok := r.f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error) {
	for _, u := range r.f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Save(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if user.ID == 0 {
		user.ID = r.f.nextUserID
		r.f.nextUserID++
	}
	r.f.users[user.ID] = user
	return nil
}

type fakeAuditRepo struct{ f *fakeRepository }

func (r *fakeAuditRepo) Create(ctx context.Context, tx *gorm.DB, event *models.AuditEvent) error {
	event.ID = uint(len(r.f.audits) + 1)
	r.f.audits = append(r.f.audits, event)
	return nil
}

func (r *fakeAuditRepo) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AuditEvent, error) {
	if limit <= 0 || limit > len(r.f.audits) {
		limit = len(r.f.audits)
	}
	out := make([]*models.AuditEvent, limit)
	copy(out, r.f.audits[len(r.f.audits)-limit:])
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
