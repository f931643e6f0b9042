package service

import (
	"errors"
	"fmt"

	"github.com/Loikaaa/neplia-sub001/internal/dto"
	"github.com/Loikaaa/neplia-sub001/internal/playback"
	"github.com/Loikaaa/neplia-sub001/internal/repository"
	"github.com/Loikaaa/neplia-sub001/internal/session"
	"github.com/rs/zerolog/log"
)

// ErrNoAudioSection is returned for playback operations when the current
// section has no audio source.
var ErrNoAudioSection = errors.New("current section has no audio")

// SessionService drives live sessions: start, navigation, answers, playback
// transport and the submission gate.
type SessionService interface {
	Start(testID uint, req dto.SessionStartDTO) (*dto.SessionSnapshotDTO, error)
	Get(sessionID string) (*dto.SessionSnapshotDTO, error)
	Next(sessionID string) (*dto.SessionSnapshotDTO, error)
	Previous(sessionID string) (*dto.SessionSnapshotDTO, error)
	SetAnswer(sessionID string, req dto.SessionAnswerDTO) (*dto.SessionSnapshotDTO, error)
	PlaybackState(sessionID string) (*dto.PlaybackStateDTO, error)
	TogglePlayback(sessionID string) (*dto.PlaybackStateDTO, error)
	ReplayPlayback(sessionID string) (*dto.PlaybackStateDTO, error)
	SetVolume(sessionID string, percent float64) (*dto.PlaybackStateDTO, error)
	Submit(sessionID string) (*dto.TestAttemptDetailDTO, error)
}

type sessionService struct {
	testRepo             repository.TestRepository
	manager              *session.Manager
	submissionSvc        SubmissionService
	enforceTimingDefault bool
}

func NewSessionService(
	testRepo repository.TestRepository,
	manager *session.Manager,
	submissionSvc SubmissionService,
	enforceTimingDefault bool,
) SessionService {
	return &sessionService{
		testRepo:             testRepo,
		manager:              manager,
		submissionSvc:        submissionSvc,
		enforceTimingDefault: enforceTimingDefault,
	}
}

func (s *sessionService) Start(testID uint, req dto.SessionStartDTO) (*dto.SessionSnapshotDTO, error) {
	test, err := s.testRepo.FindByIDWithSections(testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Start session: test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	reg, err := session.NewRegistryFromModel(test.Sections)
	if err != nil {
		return nil, fmt.Errorf("test %d cannot be sat: %w", testID, err)
	}

	enforce := s.enforceTimingDefault
	if req.EnforceTiming != nil {
		enforce = *req.EnforceTiming
	}

	sess := s.manager.Start(reg, testID, req.UserID, enforce)
	return snapshotDTO(sess.Snapshot()), nil
}

func (s *sessionService) Get(sessionID string) (*dto.SessionSnapshotDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.SyncPlayback()
	return snapshotDTO(sess.Snapshot()), nil
}

func (s *sessionService) Next(sessionID string) (*dto.SessionSnapshotDTO, error) {
	return s.navigate(sessionID, (*session.Session).Next)
}

func (s *sessionService) Previous(sessionID string) (*dto.SessionSnapshotDTO, error) {
	return s.navigate(sessionID, (*session.Session).Previous)
}

func (s *sessionService) navigate(sessionID string, move func(*session.Session) error) (*dto.SessionSnapshotDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := move(sess); err != nil {
		return nil, err
	}
	return snapshotDTO(sess.Snapshot()), nil
}

func (s *sessionService) SetAnswer(sessionID string, req dto.SessionAnswerDTO) (*dto.SessionSnapshotDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.SetAnswer(req.QuestionID, req.Value); err != nil {
		return nil, err
	}
	return snapshotDTO(sess.Snapshot()), nil
}

func (s *sessionService) PlaybackState(sessionID string) (*dto.PlaybackStateDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	state := sess.SyncPlayback()
	if state == nil {
		return nil, ErrNoAudioSection
	}
	return playbackDTO(*state), nil
}

func (s *sessionService) TogglePlayback(sessionID string) (*dto.PlaybackStateDTO, error) {
	return s.transport(sessionID, (*playback.Adapter).TogglePlayPause)
}

func (s *sessionService) ReplayPlayback(sessionID string) (*dto.PlaybackStateDTO, error) {
	return s.transport(sessionID, (*playback.Adapter).SeekToStart)
}

func (s *sessionService) SetVolume(sessionID string, percent float64) (*dto.PlaybackStateDTO, error) {
	return s.transport(sessionID, func(a *playback.Adapter) error {
		return a.SetVolume(percent)
	})
}

func (s *sessionService) transport(sessionID string, op func(*playback.Adapter) error) (*dto.PlaybackStateDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	player := sess.Player()
	if player == nil {
		return nil, ErrNoAudioSection
	}
	if err := op(player); err != nil {
		return nil, err
	}
	state := sess.SyncPlayback()
	if state == nil {
		return nil, ErrNoAudioSection
	}
	return playbackDTO(*state), nil
}

// Submit fires the submission gate, persists the attempt and retires the live
// session.
func (s *sessionService) Submit(sessionID string) (*dto.TestAttemptDetailDTO, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	detail, err := s.submissionSvc.SubmitSession(sess)
	if err != nil {
		return nil, err
	}
	s.manager.Remove(sessionID)
	return detail, nil
}

func snapshotDTO(snap session.Snapshot) *dto.SessionSnapshotDTO {
	out := &dto.SessionSnapshotDTO{
		ID:              snap.ID,
		TestID:          snap.TestID,
		UserID:          snap.UserID,
		SectionIndex:    snap.SectionIndex,
		SectionCount:    snap.SectionCount,
		SectionID:       snap.Section.ID,
		SectionTitle:    snap.Section.Title,
		SectionType:     string(snap.Section.Type),
		IsFirstSection:  snap.IsFirstSection,
		IsLastSection:   snap.IsLastSection,
		Completed:       snap.Completed,
		AnsweredCount:   snap.AnsweredCount,
		StartedAt:       snap.StartedAt,
		SectionDeadline: snap.SectionDeadline,
	}
	if snap.Playback != nil {
		out.Playback = playbackDTO(*snap.Playback)
	}
	return out
}

func playbackDTO(state playback.State) *dto.PlaybackStateDTO {
	return &dto.PlaybackStateDTO{
		IsPlaying:       state.IsPlaying,
		ProgressPercent: state.ProgressPercent,
		VolumePercent:   state.VolumePercent,
	}
}
