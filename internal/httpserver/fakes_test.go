package httpserver

import (
	"context"
	"strings"
	"time"

	articledomain "realty/backend/internal/domain/article"
	authdomain "realty/backend/internal/domain/auth"
	propertydomain "realty/backend/internal/domain/property"
)

type memoryUserRepo struct {
	nextID int64
	users  map[int64]*authdomain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{nextID: 1, users: map[int64]*authdomain.User{}}
}

func (r *memoryUserRepo) Create(_ context.Context, user *authdomain.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return authdomain.ErrEmailInUse
		}
	}
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id int64) (*authdomain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUserRepo) GetBySurname(_ context.Context, surname string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.Surname == surname {
			clone := *user
			return &clone, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *memoryUserRepo) GetByResetToken(_ context.Context, token string) (*authdomain.User, error) {
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, authdomain.ErrUserNotFound
}

func (r *memoryUserRepo) List(_ context.Context) ([]*authdomain.User, error) {
	out := make([]*authdomain.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *authdomain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	clone := *user
	if clone.PasswordHash == "" {
		clone.PasswordHash = stored.PasswordHash
	}
	if clone.PreviousPasswords == nil {
		clone.PreviousPasswords = stored.PreviousPasswords
	}
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string, history []string) error {
	user, ok := r.users[id]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.PreviousPasswords = history
	user.ResetToken = nil
	user.ResetTokenCreatedAt = nil
	return nil
}

func (r *memoryUserRepo) SetResetToken(_ context.Context, id int64, token string, createdAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return authdomain.ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenCreatedAt = &createdAt
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return authdomain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type memoryPropertyRepo struct {
	nextID     int64
	properties map[int64]*propertydomain.Property
}

func newMemoryPropertyRepo() *memoryPropertyRepo {
	return &memoryPropertyRepo{nextID: 1, properties: map[int64]*propertydomain.Property{}}
}

func (r *memoryPropertyRepo) Create(_ context.Context, p *propertydomain.Property) error {
	p.ID = r.nextID
	r.nextID++
	clone := *p
	r.properties[p.ID] = &clone
	return nil
}

func (r *memoryPropertyRepo) GetByID(_ context.Context, id int64) (*propertydomain.Property, error) {
	p, ok := r.properties[id]
	if !ok {
		return nil, propertydomain.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memoryPropertyRepo) List(_ context.Context) ([]*propertydomain.Property, error) {
	out := make([]*propertydomain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryPropertyRepo) ListByFilter(_ context.Context, filter propertydomain.Filter) ([]*propertydomain.Property, error) {
	var out []*propertydomain.Property
	for _, p := range r.properties {
		if p.Category != filter.Category {
			continue
		}
		if len(filter.Types) > 0 {
			matched := false
			for _, t := range filter.Types {
				if p.Type == t {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if filter.Location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryPropertyRepo) Update(_ context.Context, p *propertydomain.Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return propertydomain.ErrNotFound
	}
	clone := *p
	r.properties[p.ID] = &clone
	return nil
}

func (r *memoryPropertyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.properties[id]; !ok {
		return propertydomain.ErrNotFound
	}
	delete(r.properties, id)
	return nil
}

type memoryArticleRepo struct {
	nextID   int64
	articles map[int64]*articledomain.Article
}

func newMemoryArticleRepo() *memoryArticleRepo {
	return &memoryArticleRepo{nextID: 1, articles: map[int64]*articledomain.Article{}}
}

func (r *memoryArticleRepo) Create(_ context.Context, a *articledomain.Article) error {
	a.ID = r.nextID
	r.nextID++
	clone := *a
	r.articles[a.ID] = &clone
	return nil
}

func (r *memoryArticleRepo) GetByID(_ context.Context, id int64) (*articledomain.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, articledomain.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memoryArticleRepo) GetByTitle(_ context.Context, title string) (*articledomain.Article, error) {
	for _, a := range r.articles {
		if strings.EqualFold(a.Title, title) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, articledomain.ErrNotFound
}

func (r *memoryArticleRepo) GetByAuthor(_ context.Context, author string) (*articledomain.Article, error) {
	for _, a := range r.articles {
		if strings.EqualFold(a.Author, author) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, articledomain.ErrNotFound
}

func (r *memoryArticleRepo) List(_ context.Context) ([]*articledomain.Article, error) {
	out := make([]*articledomain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memoryArticleRepo) Update(_ context.Context, a *articledomain.Article) error {
	if _, ok := r.articles[a.ID]; !ok {
		return articledomain.ErrNotFound
	}
	clone := *a
	r.articles[a.ID] = &clone
	return nil
}

func (r *memoryArticleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.articles[id]; !ok {
		return articledomain.ErrNotFound
	}
	delete(r.articles, id)
	return nil
}

type recordingNotifier struct {
	sent []recordedMail
}

type recordedMail struct {
	to      string
	subject string
	body    string
}

func (n *recordingNotifier) Send(_ context.Context, to, subject, body string) error {
	n.sent = append(n.sent, recordedMail{to: to, subject: subject, body: body})
	return nil
}
