package flatfile

import (
	"context"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// userID|name|age|manufacturer|position|contact|email|credential|loggedIn

func encodeUser(u domain.User) string {
	return join(
		u.UserID,
		u.Name,
		formatInt(u.Age),
		u.Manufacturer,
		u.Position,
		u.Contact,
		u.Email,
		u.Credential.Stored(),
		formatBool(u.LoggedIn),
	)
}

func decodeUser(line string) (domain.User, error) {
	f, err := split(line, 9)
	if err != nil {
		return domain.User{}, err
	}
	age, err := parseInt("age", f[2])
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{
		UserID:       f[0],
		Name:         f[1],
		Age:          age,
		Manufacturer: f[3],
		Position:     f[4],
		Contact:      f[5],
		Email:        f[6],
		Credential:   domain.CredentialFromStored(f[7]),
		LoggedIn:     parseBool(f[8]),
	}, nil
}

func (s *Store) LoadUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.readLines(ctx, usersFile, func(line string) error {
		u, err := decodeUser(line)
		if err != nil {
			return err
		}
		users = append(users, u)
		return nil
	})
	return users, err
}

func (s *Store) SaveUsers(ctx context.Context, users []domain.User) error {
	lines := make([]string, 0, len(users))
	for _, u := range users {
		lines = append(lines, encodeUser(u))
	}
	return s.writeLines(ctx, usersFile, lines)
}
