package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func marshalFiles(files []string) (sql.NullString, error) {
	if len(files) == 0 {
		return sql.NullString{}, nil
	}

	p, err := json.Marshal(files)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshaling files: %w", err)
	}
	return sql.NullString{String: string(p), Valid: true}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransmission(row scanner) (*TransmissionRecord, error) {
	var rec TransmissionRecord
	var files sql.NullString

	err := row.Scan(
		&rec.ID,
		&rec.CreatedAt,
		&rec.StationID,
		&rec.Channel,
		&rec.TemperatureTenths,
		&rec.Humidity,
		&rec.Nibbles,
		&rec.Chips,
		&rec.Pulses,
		&rec.Frequency,
		&files,
	)
	if err != nil {
		return nil, err
	}

	if files.Valid {
		if err = json.Unmarshal([]byte(files.String), &rec.Files); err != nil {
			return nil, fmt.Errorf("unmarshaling files: %w", err)
		}
	}

	return &rec, nil
}
