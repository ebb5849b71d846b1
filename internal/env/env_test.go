package env_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packbotics/warehouse-rl/internal/env"
	"github.com/packbotics/warehouse-rl/internal/env/core"
	"github.com/packbotics/warehouse-rl/internal/testutil"
)

func newCorridorEnv(t *testing.T, cfg env.Config, seed int64) (*env.Env, env.Observation) {
	t.Helper()
	e, err := env.New(cfg, env.WithLogger(testutil.NopLogger()))
	require.NoError(t, err)
	obs, err := e.Reset(seed)
	require.NoError(t, err)
	return e, obs
}

func TestStepDeterminism(t *testing.T) {
	cfg := env.DefaultConfig()
	cfg.Width = 5
	cfg.Height = 5
	cfg.MaxSteps = 50
	cfg.BatteryCapacity = 50

	actions := []core.Action{
		core.ActionMoveRight, core.ActionMoveRight, core.ActionMoveDown,
		core.ActionMoveDown, core.ActionPickup, core.ActionMoveRight,
		core.ActionMoveDown, core.ActionDrop, core.ActionMoveUp,
		core.ActionMoveLeft, core.ActionMoveLeft,
	}

	a, obsA := newCorridorEnv(t, cfg, 123)
	b, obsB := newCorridorEnv(t, cfg, 123)
	require.Equal(t, obsA, obsB)

	for i, action := range actions {
		oa, ra, da, ia, errA := a.Step(action)
		ob, rb, db, ib, errB := b.Step(action)
		require.NoError(t, errA)
		require.NoError(t, errB)

		assert.Equal(t, oa, ob, "observation diverged at step %d", i)
		assert.Equal(t, ra, rb, "reward diverged at step %d", i)
		assert.Equal(t, da, db, "done diverged at step %d", i)
		assert.Equal(t, ia, ib, "info diverged at step %d", i)
		if da {
			break
		}
	}
}

func TestStepBumpFreezesAgent(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	for i := 0; i < 10; i++ {
		obs, reward, done, info, err := e.Step(core.ActionMoveUp)
		require.NoError(t, err)

		assert.Equal(t, core.NewPosition(0, 0), obs.AgentPos, "agent moved on step %d", i)
		assert.Equal(t, -6.0, reward)
		assert.Equal(t, env.EventBump, info.Event)
		assert.False(t, done)
	}
}

func TestStepPickupAndWrongDrop(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	obs, reward, _, info, err := e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	assert.Equal(t, -1.0, reward)
	assert.Empty(t, info.Event)
	assert.Equal(t, core.NewPosition(1, 0), obs.AgentPos)

	obs, reward, _, info, err = e.Step(core.ActionPickup)
	require.NoError(t, err)
	assert.Equal(t, 1.0, reward)
	assert.Equal(t, env.EventPickup, info.Event)
	require.NotNil(t, obs.Carrying)
	assert.Equal(t, env.PackageID(0), *obs.Carrying)

	obs, reward, done, info, err := e.Step(core.ActionDrop)
	require.NoError(t, err)
	assert.Equal(t, -8.0, reward)
	assert.Equal(t, env.EventDrop, info.Event)
	assert.False(t, done)
	assert.Nil(t, obs.Carrying)
	assert.Equal(t, core.NewPosition(1, 0), obs.Packages[0].Pos)
	assert.Equal(t, 0, obs.Packages[0].Delivered)
}

func TestStepDeliverEndsEpisode(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	for _, action := range []core.Action{core.ActionMoveRight, core.ActionPickup, core.ActionMoveRight} {
		_, _, done, _, err := e.Step(action)
		require.NoError(t, err)
		require.False(t, done)
	}

	obs, reward, done, info, err := e.Step(core.ActionDrop)
	require.NoError(t, err)
	assert.Equal(t, 19.0, reward)
	assert.True(t, done)
	assert.Equal(t, env.EventDeliver, info.Event)
	assert.Equal(t, env.DoneAllDelivered, info.DoneReason)
	assert.Nil(t, obs.Carrying)
	assert.Equal(t, 1, obs.Packages[0].Delivered)
	assert.Equal(t, core.NewPosition(2, 0), obs.Packages[0].Pos)
}

func TestCarriedPackageTravelsWithAgent(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	_, _, _, _, err := e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	_, _, _, _, err = e.Step(core.ActionPickup)
	require.NoError(t, err)

	obs, _, _, _, err := e.Step(core.ActionMoveLeft)
	require.NoError(t, err)
	assert.Equal(t, core.NewPosition(0, 0), obs.AgentPos)
	assert.Equal(t, core.NewPosition(0, 0), obs.Packages[0].Pos)
}

func TestTerminationPriorityMaxStepsWins(t *testing.T) {
	cfg := testutil.SmallCorridorConfig()
	cfg.MaxSteps = 5
	cfg.BatteryCapacity = 5
	e, _ := newCorridorEnv(t, cfg, 0)

	var done bool
	var info env.StepInfo
	for i := 0; i < 5; i++ {
		var err error
		_, _, done, info, err = e.Step(core.ActionMoveUp)
		require.NoError(t, err)
	}
	assert.True(t, done)
	assert.Equal(t, env.DoneMaxSteps, info.DoneReason)
}

func TestBatteryEmptyTermination(t *testing.T) {
	cfg := testutil.SmallCorridorConfig()
	cfg.BatteryCapacity = 2
	e, _ := newCorridorEnv(t, cfg, 0)

	obs, _, done, _, err := e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 1, obs.Battery)

	obs, _, done, info, err := e.Step(core.ActionMoveLeft)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 0, obs.Battery)
	assert.Equal(t, env.DoneBatteryEmpty, info.DoneReason)

	// Termination is advisory: stepping past done keeps advancing the
	// counter while the battery stays floored at zero.
	obs, _, done, info, err = e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 0, obs.Battery)
	assert.Equal(t, 3, obs.StepCount)
	assert.Equal(t, env.DoneBatteryEmpty, info.DoneReason)
}

func TestPickupFailures(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	// No package under the agent at the start cell.
	_, reward, _, info, err := e.Step(core.ActionPickup)
	require.NoError(t, err)
	assert.Equal(t, -1.0, reward)
	assert.Equal(t, env.EventPickupFailedNoPackage, info.Event)

	_, _, _, _, err = e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	_, _, _, info, err = e.Step(core.ActionPickup)
	require.NoError(t, err)
	require.Equal(t, env.EventPickup, info.Event)

	_, reward, _, info, err = e.Step(core.ActionPickup)
	require.NoError(t, err)
	assert.Equal(t, -1.0, reward)
	assert.Equal(t, env.EventPickupFailedAlreadyCarrying, info.Event)
}

func TestDropWhileNotCarrying(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	obs, reward, _, info, err := e.Step(core.ActionDrop)
	require.NoError(t, err)
	assert.Equal(t, -1.0, reward)
	assert.Equal(t, env.EventDropFailedNotCarrying, info.Event)
	assert.Equal(t, core.NewPosition(1, 0), obs.Packages[0].Pos)
}

func TestStepBeforeReset(t *testing.T) {
	e, err := env.New(env.DefaultConfig())
	require.NoError(t, err)

	_, _, _, _, err = e.Step(core.ActionMoveUp)
	assert.ErrorIs(t, err, core.ErrEpisodeNotStarted)
}

func TestStepInvalidAction(t *testing.T) {
	e, _ := newCorridorEnv(t, testutil.SmallCorridorConfig(), 0)

	for _, bad := range []core.Action{core.Action(6), core.Action(-1), core.Action(42)} {
		_, _, _, _, err := e.Step(bad)
		assert.ErrorIs(t, err, core.ErrInvalidAction)
	}

	// Rejected actions must not consume a step.
	obs, _, _, _, err := e.Step(core.ActionMoveUp)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.StepCount)
}

func TestAgentStaysInBoundsAndOffWalls(t *testing.T) {
	cfg := env.DefaultConfig()
	cfg.MaxSteps = 1000
	cfg.BatteryCapacity = 1000
	e, obs := newCorridorEnv(t, cfg, 7)

	walls := make(map[core.Position]struct{}, len(obs.Walls))
	for _, w := range obs.Walls {
		walls[w] = struct{}{}
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		action := core.Action(rng.Intn(6))
		next, _, _, _, err := e.Step(action)
		require.NoError(t, err)

		assert.True(t, next.AgentPos.IsValid(cfg.Width, cfg.Height),
			"agent out of bounds at step %d: %s", i, next.AgentPos)
		_, onWall := walls[next.AgentPos]
		assert.False(t, onWall, "agent on wall at step %d: %s", i, next.AgentPos)
	}
}

func TestResetSeedSensitivity(t *testing.T) {
	e, err := env.New(env.DefaultConfig())
	require.NoError(t, err)

	base, err := e.Reset(0)
	require.NoError(t, err)

	differs := false
	for seed := int64(1); seed < 10; seed++ {
		obs, err := e.Reset(seed)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(base.Walls, obs.Walls) ||
			!assert.ObjectsAreEqual(base.Packages, obs.Packages) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "seeds 0..9 all produced identical layouts")
}

func TestResetSameSeedSameLayout(t *testing.T) {
	e, err := env.New(env.DefaultConfig())
	require.NoError(t, err)

	first, err := e.Reset(42)
	require.NoError(t, err)
	firstID := e.EpisodeID()

	second, err := e.Reset(42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEqual(t, firstID, e.EpisodeID(), "episode ids must be unique per episode")
}

func TestOverlappingPackagesPickInIDOrder(t *testing.T) {
	cfg := testutil.SmallCorridorConfig()
	cfg.NumPackages = 2
	e, obs := newCorridorEnv(t, cfg, 0)

	// Both packages are forced onto the single free cell.
	require.Equal(t, core.NewPosition(1, 0), obs.Packages[0].Pos)
	require.Equal(t, core.NewPosition(1, 0), obs.Packages[1].Pos)

	_, _, _, _, err := e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	obs, _, _, _, err = e.Step(core.ActionPickup)
	require.NoError(t, err)
	require.NotNil(t, obs.Carrying)
	assert.Equal(t, env.PackageID(0), *obs.Carrying)

	_, _, _, _, err = e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	obs, _, done, info, err := e.Step(core.ActionDrop)
	require.NoError(t, err)
	assert.False(t, done, "one package still undelivered")
	assert.Equal(t, env.EventDeliver, info.Event)
	assert.Equal(t, 1, obs.Packages[0].Delivered)
	assert.Equal(t, 0, obs.Packages[1].Delivered)

	// Fetch the second package; the delivered one stays frozen at the goal.
	_, _, _, _, err = e.Step(core.ActionMoveLeft)
	require.NoError(t, err)
	obs, _, _, _, err = e.Step(core.ActionPickup)
	require.NoError(t, err)
	require.NotNil(t, obs.Carrying)
	assert.Equal(t, env.PackageID(1), *obs.Carrying)
	assert.Equal(t, core.NewPosition(2, 0), obs.Packages[0].Pos)

	_, _, _, _, err = e.Step(core.ActionMoveRight)
	require.NoError(t, err)
	obs, _, done, info, err = e.Step(core.ActionDrop)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, env.DoneAllDelivered, info.DoneReason)
	assert.Equal(t, 1, obs.Packages[1].Delivered)
}
