package services

import (
	"context"
	"sync"
	"testing"

	"photohunt-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu    sync.Mutex
	casts []int64
}

func (r *recordingNotifier) VoteCast(_ context.Context, vote *models.Vote, _ *models.Photo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.casts = append(r.casts, vote.PhotoID)
}

func TestCast_DuplicateRejected(t *testing.T) {
	t.Parallel()

	env := newPhotoEnv(t)
	env.activeTheme(t)
	owner := createUser(t, env.userRepo, "Alice")
	voter := createUser(t, env.userRepo, "Bob")
	ctx := context.Background()

	photo := env.uploadedPhoto(t, owner)

	got, err := env.votes.Cast(ctx, voter.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumVotes)

	_, err = env.votes.Cast(ctx, voter.ID, photo.ID)
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	count, err := env.voteRepo.CountByPhoto(ctx, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCast_PendingPhotoRejected(t *testing.T) {
	t.Parallel()

	env := newPhotoEnv(t)
	env.activeTheme(t)
	owner := createUser(t, env.userRepo, "Alice")
	voter := createUser(t, env.userRepo, "Bob")
	ctx := context.Background()

	resp, err := env.photos.RequestUpload(ctx, owner.ID, "image/jpeg")
	require.NoError(t, err)

	_, err = env.votes.Cast(ctx, voter.ID, resp.Photo.ID)
	assert.ErrorIs(t, err, ErrPhotoNotReady)
}

func TestCast_TwoVotersAccumulate(t *testing.T) {
	t.Parallel()

	env := newPhotoEnv(t)
	env.activeTheme(t)
	owner := createUser(t, env.userRepo, "Alice")
	bob := createUser(t, env.userRepo, "Bob")
	carol := createUser(t, env.userRepo, "Carol")
	ctx := context.Background()

	photo := env.uploadedPhoto(t, owner)

	_, err := env.votes.Cast(ctx, bob.ID, photo.ID)
	require.NoError(t, err)

	got, err := env.votes.Cast(ctx, carol.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumVotes)
	assert.True(t, got.Voted)

	// A viewer who never voted sees the same count but not the flag.
	got, err = env.photos.Get(ctx, photo.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.NumVotes)
	assert.False(t, got.Voted)
}

func TestCast_NotifierInvoked(t *testing.T) {
	t.Parallel()

	env := newPhotoEnv(t)
	env.activeTheme(t)
	notifier := &recordingNotifier{}
	env.votes = NewVoteService(env.voteRepo, env.photoRepo, env.photos, notifier)

	owner := createUser(t, env.userRepo, "Alice")
	voter := createUser(t, env.userRepo, "Bob")
	ctx := context.Background()

	photo := env.uploadedPhoto(t, owner)

	_, err := env.votes.Cast(ctx, voter.ID, photo.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{photo.ID}, notifier.casts)

	// A rejected duplicate must not notify again.
	_, err = env.votes.Cast(ctx, voter.ID, photo.ID)
	require.ErrorIs(t, err, ErrAlreadyVoted)
	assert.Len(t, notifier.casts, 1)
}

func TestCast_UnknownPhoto(t *testing.T) {
	t.Parallel()

	env := newPhotoEnv(t)
	voter := createUser(t, env.userRepo, "Bob")

	_, err := env.votes.Cast(context.Background(), voter.ID, 404)
	assert.Error(t, err)
}
