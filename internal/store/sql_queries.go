package store

const (
	createHistoryTable = `
		CREATE TABLE IF NOT EXISTS history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			action     TEXT NOT NULL,
			cert_id    TEXT NOT NULL,
			tx_hash    TEXT NOT NULL DEFAULT '',
			detail     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`

	saveHistoryEntry = `
		INSERT INTO history (
			action,
			cert_id,
			tx_hash,
			detail,
			created_at
		) VALUES ($1, $2, $3, $4, $5);`

	getRecentHistory = `
		SELECT
			id,
			action,
			cert_id,
			tx_hash,
			detail,
			created_at
		FROM history
		ORDER BY id DESC
		LIMIT $1;`

	getHistoryByCert = `
		SELECT
			id,
			action,
			cert_id,
			tx_hash,
			detail,
			created_at
		FROM history
		WHERE cert_id = $1
		ORDER BY id DESC;`
)
