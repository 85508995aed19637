package roster

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/feet/pkg/constants"
	"github.com/agentstation/feet/pkg/errors"
)

// DateLayout is the calendar date format used in snapshots.
const DateLayout = "2006-01-02"

// snapshot is the on-disk YAML shape of a roster.
type snapshot struct {
	Date   string          `yaml:"date"`
	Rounds []roundSnapshot `yaml:"rounds"`
}

type roundSnapshot struct {
	Grade   string          `yaml:"grade"`
	Date    string          `yaml:"date,omitempty"`
	Matches []matchSnapshot `yaml:"matches"`
}

type matchSnapshot struct {
	Team1 string `yaml:"team1"`
	Team2 string `yaml:"team2"`
	Time  string `yaml:"time"`
	Venue string `yaml:"venue"`
	Court int    `yaml:"court"`
}

// Encode writes the roster as YAML.
func Encode(w io.Writer, r *Roster) error {
	snap := snapshot{Date: r.Date.Format(DateLayout)}
	for _, round := range r.Rounds {
		rs := roundSnapshot{Grade: round.Grade, Matches: []matchSnapshot{}}
		if !round.Date.IsZero() && !round.Date.Equal(r.Date) {
			rs.Date = round.Date.Format(DateLayout)
		}
		for _, m := range round.Matches {
			rs.Matches = append(rs.Matches, matchSnapshot{
				Team1: m.Team1,
				Team2: m.Team2,
				Time:  m.Time.String(),
				Venue: m.Venue.String(),
				Court: int(m.Court),
			})
		}
		snap.Rounds = append(snap.Rounds, rs)
	}

	data, err := yaml.MarshalWithOptions(snap, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return fmt.Errorf("marshaling roster: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Decode reads a YAML roster and validates it.
func Decode(r io.Reader) (*Roster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return decode(data, "")
}

func decode(data []byte, file string) (*Roster, error) {
	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("yaml", file, err)
	}

	date, err := time.Parse(DateLayout, snap.Date)
	if err != nil {
		return nil, errors.NewParseError("yaml", file, fmt.Sprintf("invalid date %q", snap.Date), err)
	}

	out := &Roster{Date: date}
	for _, rs := range snap.Rounds {
		round := Round{Grade: rs.Grade, Date: date}
		if rs.Date != "" {
			if round.Date, err = time.Parse(DateLayout, rs.Date); err != nil {
				return nil, errors.NewParseError("yaml", file, fmt.Sprintf("invalid date %q for grade %s", rs.Date, rs.Grade), err)
			}
		}
		for _, ms := range rs.Matches {
			clock, err := ParseClock(ms.Time)
			if err != nil {
				return nil, fmt.Errorf("grade %s: %w", rs.Grade, err)
			}
			venue, err := ParseVenue(ms.Venue)
			if err != nil {
				return nil, fmt.Errorf("grade %s: %w", rs.Grade, err)
			}
			round.Matches = append(round.Matches, Match{
				Grade: rs.Grade,
				Team1: ms.Team1,
				Team2: ms.Team2,
				Time:  clock,
				Venue: venue,
				Court: Court(ms.Court),
			})
		}
		out.Rounds = append(out.Rounds, round)
	}

	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadFile reads a roster snapshot from path.
func LoadFile(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return decode(data, path)
}

// SaveFile writes a roster snapshot to path, creating parent directories.
func SaveFile(path string, r *Roster) error {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
