package storage

const (
	initSchemaSQL = `
CREATE TABLE IF NOT EXISTS transmissions (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at         TIMESTAMP NOT NULL,
    station_id         INTEGER   NOT NULL,
    channel            INTEGER   NOT NULL,
    temperature_tenths INTEGER   NOT NULL,
    humidity           INTEGER   NOT NULL,
    nibbles            TEXT      NOT NULL,
    chips              INTEGER   NOT NULL,
    pulses             INTEGER   NOT NULL,
    frequency          INTEGER   NOT NULL,
    files              TEXT
);`

	initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_transmissions_station ON transmissions (station_id, channel);`

	insertTransmissionSQL = `
INSERT INTO transmissions (created_at,
                           station_id,
                           channel,
                           temperature_tenths,
                           humidity,
                           nibbles,
                           chips,
                           pulses,
                           frequency,
                           files)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectTransmissionColumns = `
SELECT
    id,
    created_at,
    station_id,
    channel,
    temperature_tenths,
    humidity,
    nibbles,
    chips,
    pulses,
    frequency,
    files
FROM transmissions`

	selectTransmissionSQL = selectTransmissionColumns + `
WHERE
    id = ?`

	selectTransmissionsSQL = selectTransmissionColumns + `
ORDER BY id`
)
