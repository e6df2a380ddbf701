package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/roman-kulish/weather-tx/internal/preview"
	"github.com/roman-kulish/weather-tx/internal/protocol"
	"github.com/roman-kulish/weather-tx/internal/publish"
	"github.com/roman-kulish/weather-tx/internal/sdr"
	"github.com/roman-kulish/weather-tx/internal/sdr/hackrf"
	"github.com/roman-kulish/weather-tx/internal/sink"
	"github.com/roman-kulish/weather-tx/internal/storage"
)

// Run encodes the configured reading, writes the output files and then runs
// the optional journal, announce and transmit steps in that order
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	t := protocol.Build(config.Frame())

	logger.Info("transmission encoded",
		slog.Group("sensor",
			slog.Int("id", int(t.Frame.StationID)),
			slog.Int("channel", t.Frame.Channel),
			slog.Float64("temperature", t.Frame.Temperature()),
			slog.Int("humidity", t.Frame.Humidity)),
		slog.String("nibbles", t.Nibbles.String()),
		slog.String("chips", humanize.Comma(int64(len(t.Chips)))),
		slog.String("pulses", humanize.Comma(int64(len(t.Pulses)))),
		slog.String("duration", (time.Duration(t.Duration())*time.Microsecond).String()))

	files, err := writeOutputs(t, config, logger)
	if err != nil {
		return err
	}

	if config.Output.Preview {
		path, err := writePreview(t, config, logger)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		files = append(files, path)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	if config.Journal.Path != "" {
		if err = recordTransmission(ctx, t, files, config, logger); err != nil {
			return fmt.Errorf("failed to record transmission: %w", err)
		}
	}

	if config.MQTT.Enabled {
		if err = announce(t, files, config, logger); err != nil {
			return fmt.Errorf("failed to announce transmission: %w", err)
		}
	}

	if config.Transmit.Enabled {
		if err = transmit(ctx, config, logger); err != nil {
			return fmt.Errorf("failed to transmit: %w", err)
		}
	}

	return nil
}

func writeOutputs(t *protocol.Transmission, config *Config, logger *slog.Logger) ([]string, error) {
	files := make([]string, 0, len(config.Output.Formats))
	for _, format := range config.Output.Formats {
		var write func(w io.Writer) error
		switch format {
		case sink.FormatSubGhz:
			write = func(w io.Writer) error {
				return sink.WriteSubGhz(w, int(config.Frequency), t.Pulses)
			}
		case sink.FormatCU8:
			write = func(w io.Writer) error {
				return sink.WriteCU8(w, t.Samples.CU8)
			}
		case sink.FormatCS8:
			write = func(w io.Writer) error {
				return sink.WriteCS8(w, t.Samples.CS8)
			}
		default:
			return nil, fmt.Errorf("unknown output format '%s'", format)
		}

		path := config.OutputPath(format.String())
		n, err := sink.SaveFile(path, write)
		if err != nil {
			return nil, fmt.Errorf("failed to write %s file: %w", format, err)
		}

		logger.Info("file written", slog.String("path", path), slog.String("size", humanize.Bytes(uint64(n))))
		files = append(files, path)
	}

	return files, nil
}

func writePreview(t *protocol.Transmission, config *Config, logger *slog.Logger) (string, error) {
	img, err := preview.NewRenderer(preview.Config{Frequency: config.Frequency}).Render(t)
	if err != nil {
		return "", err
	}

	path := config.OutputPath(string(preview.ImagePNG))
	n, err := sink.SaveFile(path, func(w io.Writer) error {
		return preview.Encode(w, img, preview.ImagePNG)
	})
	if err != nil {
		return "", err
	}

	logger.Info("preview written",
		slog.String("path", path),
		slog.String("size", humanize.Bytes(uint64(n))),
		slog.String("dimensions", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())))

	return path, nil
}

func recordTransmission(ctx context.Context, t *protocol.Transmission, files []string, config *Config, logger *slog.Logger) (err error) {
	store := storage.NewSqliteStore(config.Journal.Path)
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	id, err := store.RecordTransmission(ctx, storage.NewTransmissionRecord(t, config.Frequency, files))
	if err != nil {
		return err
	}

	logger.Info("transmission recorded", slog.String("journal", config.Journal.Path), slog.Int64("id", id))
	return nil
}

func announce(t *protocol.Transmission, files []string, config *Config, logger *slog.Logger) error {
	announcer, err := publish.NewMQTT(config.MQTT.Config)
	if err != nil {
		return err
	}
	defer announcer.Close()

	if err = announcer.Announce(publish.NewSummary(t, config.Frequency, files)); err != nil {
		return err
	}

	logger.Info("transmission announced", slog.String("topic", publish.FormatTopic(config.MQTT.Topic, t.Frame.StationID)))
	return nil
}

func transmit(ctx context.Context, config *Config, logger *slog.Logger) error {
	hc := config.HackRFConfig()

	handler, err := hackrf.New(&hc, config.OutputPath(sink.FormatCS8.String()))
	if err != nil {
		return err
	}

	tx := sdr.NewTransmitter(handler, sdr.WithLogger(logger), sdr.WithTimeout(time.Duration(hc.Timeout)))
	return tx.Run(ctx)
}
