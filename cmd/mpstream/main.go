// Package main contains a command to stream a motion profile through a
// simulated controller, printing the executer status as it runs.
package main

import (
	"context"
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"github.com/frc-go/phoenix/canbus/fakecan"
	"github.com/frc-go/phoenix/motorcontrol"
)

var logger = golog.NewDevelopmentLogger("mpstream")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Device     int `flag:"device,default=1,usage=device number (0-62)"`
	Points     int `flag:"points,default=200,usage=number of trajectory points"`
	Distance   int `flag:"distance,default=40960,usage=profile distance in sensor units"`
	PointDurMs int `flag:"dur,default=20,usage=per-point duration in ms"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Points < 2 {
		return errors.New("need at least two trajectory points")
	}

	bus := fakecan.NewBus(fakecan.Config{}, logger)
	defer utils.UncheckedErrorFunc(bus.Close)

	return streamProfile(ctx, bus, argsParsed, logger)
}

func streamProfile(ctx context.Context, bus *fakecan.Bus, args Arguments, logger golog.Logger) (err error) {
	talon, err := motorcontrol.NewTalonSRX(args.Device, bus, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, talon.Close())
	}()

	if err := talon.ClearMotionProfileTrajectories(); err != nil {
		return err
	}
	for _, pt := range trapezoid(args.Points, float64(args.Distance), args.PointDurMs) {
		if err := talon.PushMotionProfileTrajectory(pt); err != nil {
			return err
		}
	}
	logger.Infow("profile buffered", "points", args.Points, "distance", args.Distance)

	dev := bus.Device(talon.BaseID())
	talon.Set(motorcontrol.MotionProfile, float64(motorcontrol.MotionProfileEnable),
		motorcontrol.DemandTypeNeutral, 0)

	// stream at twice the point rate, as the executer expects
	period := time.Duration(args.PointDurMs) * time.Millisecond / 2
	for {
		if !utils.SelectContextOrWait(ctx, period) {
			return ctx.Err()
		}
		talon.ProcessMotionProfileBuffer()
		dev.Advance(1)

		status, err := talon.MotionProfileStatus()
		if err != nil {
			return err
		}
		logger.Infow("executer status",
			"top", status.TopBufferCnt,
			"bottom", status.BtmBufferCnt,
			"active", status.ActivePointValid,
			"underrun", status.HasUnderrun,
		)
		if status.IsLast && status.TopBufferCnt == 0 && status.BtmBufferCnt == 0 {
			break
		}
	}

	talon.NeutralOutput()
	logger.Info("profile complete")
	return nil
}

// trapezoid generates a symmetric velocity trapezoid covering the given
// distance: ramp up over the first quarter of the points, cruise, ramp down
// over the last quarter.
func trapezoid(points int, distance float64, pointDurMs int) []motorcontrol.TrajectoryPoint {
	ramp := points / 4
	if ramp < 1 {
		ramp = 1
	}

	// unnormalized velocity shape
	shape := make([]float64, points)
	total := 0.0
	for i := range shape {
		switch {
		case i < ramp:
			shape[i] = float64(i+1) / float64(ramp)
		case i >= points-ramp:
			shape[i] = float64(points-i) / float64(ramp)
		default:
			shape[i] = 1
		}
		total += shape[i]
	}

	dt := float64(pointDurMs) / 100.0 // sensor velocities are per 100ms
	peakVel := distance / (total * dt)

	out := make([]motorcontrol.TrajectoryPoint, points)
	pos := 0.0
	for i := range out {
		vel := peakVel * shape[i]
		pos += vel * dt
		out[i] = motorcontrol.TrajectoryPoint{
			Position:    math.Round(pos),
			Velocity:    math.Round(vel),
			IsLastPoint: i == points-1,
			ZeroPos:     i == 0,
			TimeDurMs:   pointDurMs,
		}
	}
	return out
}
