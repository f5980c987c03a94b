package repository

// PostgresOption applies a configuration option to the Postgres store.
type PostgresOption func(*Postgres)

// WithClub scopes roster queries to one club code.
func WithClub(club string) PostgresOption {
	return func(p *Postgres) {
		if club != "" {
			p.club = club
		}
	}
}

// WithYear scopes result queries to one season year.
func WithYear(year int) PostgresOption {
	return func(p *Postgres) {
		if year > 0 {
			p.year = year
		}
	}
}
