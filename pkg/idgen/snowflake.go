package idgen

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/adisonshadow/adb/pkg/meta"
)

// Bit layout: 41 bits of milliseconds since epoch, 5 bits datacenter,
// 10 bits machine, 7 bits sequence.
const (
	sequenceBits   = 7
	machineBits    = 10
	datacenterBits = 5

	timestampBits  = 41
	maxSequence    = 1<<sequenceBits - 1
	maxTimestamp   = 1<<timestampBits - 1
	machineShift   = sequenceBits
	dcShift        = sequenceBits + machineBits
	timestampShift = sequenceBits + machineBits + datacenterBits
)

// DefaultEpoch is used when a snowflake config has no epoch
var DefaultEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrClockMovedBackwards is returned when the clock reads earlier than the
// last generated id
var ErrClockMovedBackwards = errors.New("idgen: clock moved backwards")

// Snowflake generates time-ordered 63-bit ids
type Snowflake struct {
	mu           sync.Mutex
	epoch        time.Time
	machineID    int64
	datacenterID int64
	format       meta.SnowflakeFormat
	lastMs       int64
	sequence     int64
	now          func() time.Time
}

// Parts is a decoded snowflake id
type Parts struct {
	Time         time.Time
	DatacenterID int
	MachineID    int
	Sequence     int
}

// NewSnowflake creates a generator for cfg. Missing ids default to 0.
func NewSnowflake(cfg meta.SnowflakeIDConfig) (*Snowflake, error) {
	s := &Snowflake{
		epoch:  DefaultEpoch,
		format: cfg.Format,
		now:    time.Now,
	}
	if cfg.MachineID != nil {
		if *cfg.MachineID < 0 || *cfg.MachineID > 1023 {
			return nil, fmt.Errorf("%w: machine id %d", ErrInvalidConfig, *cfg.MachineID)
		}
		s.machineID = int64(*cfg.MachineID)
	}
	if cfg.DatacenterID != nil {
		if *cfg.DatacenterID < 0 || *cfg.DatacenterID > 31 {
			return nil, fmt.Errorf("%w: datacenter id %d", ErrInvalidConfig, *cfg.DatacenterID)
		}
		s.datacenterID = int64(*cfg.DatacenterID)
	}
	if cfg.Epoch != nil {
		s.epoch = *cfg.Epoch
	}
	if err := s.checkElapsed(s.elapsed()); err != nil {
		return nil, err
	}
	if s.format == "" {
		s.format = meta.SnowflakeNumber
	}
	if !s.format.Valid() {
		return nil, fmt.Errorf("%w: snowflake format %q", ErrInvalidConfig, cfg.Format)
	}
	return s, nil
}

// SetClock replaces the time source (useful for testing)
func (s *Snowflake) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// NextID returns the next id. When the sequence for the current millisecond
// is exhausted it waits for the next millisecond.
func (s *Snowflake) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.elapsed()
	if err := s.checkElapsed(ms); err != nil {
		return 0, err
	}
	if ms < s.lastMs {
		return 0, fmt.Errorf("%w: %dms", ErrClockMovedBackwards, s.lastMs-ms)
	}

	if ms == s.lastMs {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			for ms <= s.lastMs {
				time.Sleep(100 * time.Microsecond)
				ms = s.elapsed()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastMs = ms

	return ms<<timestampShift | s.datacenterID<<dcShift | s.machineID<<machineShift | s.sequence, nil
}

// Next returns the next id in the configured format: int64 for number,
// decimal string for string.
func (s *Snowflake) Next() (any, error) {
	id, err := s.NextID()
	if err != nil {
		return nil, err
	}
	if s.format == meta.SnowflakeString {
		return strconv.FormatInt(id, 10), nil
	}
	return id, nil
}

// Decompose splits id into its parts
func (s *Snowflake) Decompose(id int64) Parts {
	ms := id >> timestampShift
	return Parts{
		Time:         s.epoch.Add(time.Duration(ms) * time.Millisecond),
		DatacenterID: int(id >> dcShift & (1<<datacenterBits - 1)),
		MachineID:    int(id >> machineShift & (1<<machineBits - 1)),
		Sequence:     int(id & maxSequence),
	}
}

// checkElapsed rejects epochs the 41-bit timestamp cannot count from: one
// in the future, or one so far back that the timestamp overflows.
func (s *Snowflake) checkElapsed(ms int64) error {
	if ms < 0 {
		return fmt.Errorf("%w: epoch %s is in the future", ErrInvalidConfig, s.epoch.Format(time.RFC3339))
	}
	if ms > maxTimestamp {
		return fmt.Errorf("%w: epoch %s is more than 2^41 ms in the past", ErrInvalidConfig, s.epoch.Format(time.RFC3339))
	}
	return nil
}

func (s *Snowflake) elapsed() int64 {
	return s.now().Sub(s.epoch).Milliseconds()
}
