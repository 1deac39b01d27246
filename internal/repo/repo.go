package repo

import (
	"context"
	"database/sql"
	"time"
)

type Profile struct {
	ID           int        `json:"id"`
	Login        string     `json:"login"`
	Email        string     `json:"email"`
	Description  string     `json:"description"`
	AvatarURL    string     `json:"avatar_url"`
	IsPremium    bool       `json:"is_premium"`
	PremiumUntil *time.Time `json:"premium_until,omitempty"`
}

type PremiumTicket struct {
	ID        int
	UserID    int
	PaymentID string
	Status    string
	CreatedAt time.Time
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetByLogin(ctx context.Context, login string) (int, string, error)
	GetProfileByID(ctx context.Context, id int) (Profile, error)
	UpdateProfile(ctx context.Context, id int, login, description string) (int64, error)
	UpdateAvatar(ctx context.Context, id int, avatarURL string) error
	SetPremiumUntil(ctx context.Context, userID int, until time.Time) error
	ClearPremium(ctx context.Context, userID int) error
	CreatePremiumTicket(ctx context.Context, userID int, paymentID string) (int, error)
	GetPremiumTicket(ctx context.Context, id int) (PremiumTicket, error)
	GetPremiumTicketByPayment(ctx context.Context, paymentID string) (PremiumTicket, error)
	UpdatePremiumTicketStatus(ctx context.Context, id int, status string) error
}

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserDB(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetByLogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresUserRepository) GetProfileByID(ctx context.Context, id int) (Profile, error) {
	var p Profile
	var desc, avatar sql.NullString
	var until sql.NullTime

	query := "SELECT id, login, email, description, avatar_url, premium_until FROM users WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Login, &p.Email, &desc, &avatar, &until)
	if err != nil {
		return Profile{}, err
	}
	p.Description = desc.String
	p.AvatarURL = avatar.String
	if until.Valid {
		t := until.Time
		p.PremiumUntil = &t
		p.IsPremium = time.Now().Before(t)
	}
	return p, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id int, login, description string) (int64, error) {
	query := "UPDATE users SET login=$2, description=$3 WHERE id=$1"
	res, err := r.db.ExecContext(ctx, query, id, login, description)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PostgresUserRepository) UpdateAvatar(ctx context.Context, id int, avatarURL string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET avatar_url=$2 WHERE id=$1", id, avatarURL)
	return err
}

func (r *PostgresUserRepository) SetPremiumUntil(ctx context.Context, userID int, until time.Time) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET premium_until=$2 WHERE id=$1", userID, until)
	return err
}

func (r *PostgresUserRepository) ClearPremium(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx, "UPDATE users SET premium_until=NULL WHERE id=$1", userID)
	return err
}

func (r *PostgresUserRepository) CreatePremiumTicket(ctx context.Context, userID int, paymentID string) (int, error) {
	var id int
	query := "INSERT INTO premium_tickets (user_id, payment_id, status, created_at) VALUES ($1, $2, 'pending', NOW()) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, paymentID).Scan(&id)
	return id, err
}

func (r *PostgresUserRepository) GetPremiumTicket(ctx context.Context, id int) (PremiumTicket, error) {
	var t PremiumTicket
	query := "SELECT id, user_id, payment_id, status, created_at FROM premium_tickets WHERE id=$1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.PaymentID, &t.Status, &t.CreatedAt)
	return t, err
}

func (r *PostgresUserRepository) GetPremiumTicketByPayment(ctx context.Context, paymentID string) (PremiumTicket, error) {
	var t PremiumTicket
	query := "SELECT id, user_id, payment_id, status, created_at FROM premium_tickets WHERE payment_id=$1"
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(&t.ID, &t.UserID, &t.PaymentID, &t.Status, &t.CreatedAt)
	return t, err
}

func (r *PostgresUserRepository) UpdatePremiumTicketStatus(ctx context.Context, id int, status string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE premium_tickets SET status=$2 WHERE id=$1", id, status)
	return err
}
