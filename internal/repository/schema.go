package repository

// schema returns the DDL for dialect. The UNIQUE(user_id, card_condition_id)
// constraint on card_owned is what makes duplicate ownership impossible under
// concurrent adds.
func schema(d Dialect) []string {
	switch d {
	case DialectPostgres:
		return postgresSchema
	case DialectMySQL:
		return mysqlSchema
	default:
		return sqliteSchema
	}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS editions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		edition_id INTEGER NOT NULL REFERENCES editions(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		rarity TEXT NOT NULL,
		is_foil INTEGER NOT NULL DEFAULT 0,
		nm_price REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_edition ON cards(edition_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_name ON cards(name)`,
	`CREATE TABLE IF NOT EXISTS card_conditions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		card_id INTEGER NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		grade TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0 CHECK (price >= 0),
		quantity INTEGER NOT NULL DEFAULT 0,
		UNIQUE (card_id, grade)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		salt TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS card_owned (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		card_condition_id INTEGER NOT NULL REFERENCES card_conditions(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		UNIQUE (user_id, card_condition_id)
	)`,
	`CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		token TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		expires_at DATETIME NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS editions (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS cards (
		id BIGSERIAL PRIMARY KEY,
		edition_id BIGINT NOT NULL REFERENCES editions(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		rarity TEXT NOT NULL,
		is_foil BOOLEAN NOT NULL DEFAULT FALSE,
		nm_price DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_edition ON cards(edition_id)`,
	`CREATE INDEX IF NOT EXISTS idx_cards_name_lower ON cards(LOWER(name))`,
	`CREATE TABLE IF NOT EXISTS card_conditions (
		id BIGSERIAL PRIMARY KEY,
		card_id BIGINT NOT NULL REFERENCES cards(id) ON DELETE CASCADE,
		grade TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
		quantity INTEGER NOT NULL DEFAULT 0,
		UNIQUE (card_id, grade)
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		salt TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS card_owned (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		card_condition_id BIGINT NOT NULL REFERENCES card_conditions(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		UNIQUE (user_id, card_condition_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_card_owned_user ON card_owned(user_id)`,
	`CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id BIGSERIAL PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
}

// MySQL has no CREATE INDEX IF NOT EXISTS, so indexes are declared inline.
var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS editions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		code VARCHAR(32) NOT NULL UNIQUE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS cards (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		edition_id BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL,
		image_url VARCHAR(1024) NOT NULL DEFAULT '',
		rarity VARCHAR(32) NOT NULL,
		is_foil BOOLEAN NOT NULL DEFAULT FALSE,
		nm_price DOUBLE NOT NULL DEFAULT 0,
		INDEX idx_cards_edition (edition_id),
		INDEX idx_cards_name (name),
		FOREIGN KEY (edition_id) REFERENCES editions(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS card_conditions (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		card_id BIGINT NOT NULL,
		grade VARCHAR(8) NOT NULL,
		price DOUBLE NOT NULL DEFAULT 0,
		quantity INT NOT NULL DEFAULT 0,
		UNIQUE KEY uq_card_grade (card_id, grade),
		FOREIGN KEY (card_id) REFERENCES cards(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		salt VARCHAR(255) NOT NULL,
		created_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS card_owned (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		user_id BIGINT NOT NULL,
		card_condition_id BIGINT NOT NULL,
		quantity INT NOT NULL,
		UNIQUE KEY uq_user_condition (user_id, card_condition_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (card_condition_id) REFERENCES card_conditions(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS password_reset_tokens (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		token VARCHAR(128) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL,
		expires_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB`,
}
