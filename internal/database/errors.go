package database

import (
	"errors"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgCheckViolation          = "23514"
	pgUntranslatableCharacter = "22021"
)

// nulTextMessage - PostgreSQL не хранит байт 0x00 в TEXT.
const nulTextMessage = "Text must not contain NUL characters."

// isNoRows проверяет "запись не найдена" как для pgx, так и для scany.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err)
}

func isCheckViolation(err error) bool {
	return hasPgCode(err, pgCheckViolation)
}

func isUntranslatableCharacter(err error) bool {
	return hasPgCode(err, pgUntranslatableCharacter)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
