// Command simpleScene drives a two-body scene for a few seconds: a
// dynamic circle dropped onto a static rectangle under gravity, and
// reports position/velocity each second so the solver's behavior can be
// eyeballed without a renderer.
package main

import (
	"fmt"

	physics2d "github.com/akmonengine/physics2d"
	"github.com/akmonengine/physics2d/material"
	"github.com/akmonengine/physics2d/shape"
	"github.com/akmonengine/physics2d/vecmath"
)

func main() {
	worldID := physics2d.CreateWorld()
	defer physics2d.Destroy(worldID)

	if err := physics2d.SetIterations(worldID, 4); err != nil {
		panic(err)
	}

	stone, err := material.GetByName("Stone")
	if err != nil {
		panic(err)
	}
	rubber, err := material.GetByName("Rubber")
	if err != nil {
		panic(err)
	}

	groundShape, err := shape.NewRectangle(10, 1)
	if err != nil {
		panic(err)
	}
	groundID, err := physics2d.CreateStaticBody(worldID)
	if err != nil {
		panic(err)
	}
	if err := physics2d.SetShape(worldID, groundID, groundShape); err != nil {
		panic(err)
	}
	if err := physics2d.SetMaterial(worldID, groundID, stone.ID); err != nil {
		panic(err)
	}
	if err := physics2d.SetPosition(worldID, groundID, vecmath.New(0, 0)); err != nil {
		panic(err)
	}

	ballShape, err := shape.NewCircle(0.5)
	if err != nil {
		panic(err)
	}
	ballID, err := physics2d.CreateDynamicBody(worldID)
	if err != nil {
		panic(err)
	}
	if err := physics2d.SetShape(worldID, ballID, ballShape); err != nil {
		panic(err)
	}
	if err := physics2d.SetMaterial(worldID, ballID, rubber.ID); err != nil {
		panic(err)
	}
	if err := physics2d.SetPosition(worldID, ballID, vecmath.New(0, 5)); err != nil {
		panic(err)
	}

	const dt = 1.0 / 60
	const gravity = -9.8 * dt

	for tick := 0; tick < 300; tick++ {
		if err := physics2d.ApplyGravity(worldID, 0, gravity); err != nil {
			panic(err)
		}
		if err := physics2d.Tick(worldID, dt); err != nil {
			panic(err)
		}

		if tick%60 == 0 {
			pos, _ := physics2d.GetPosition(worldID, ballID)
			vel, _ := physics2d.GetVelocity(worldID, ballID)
			fmt.Printf("t=%.2fs pos=(%.3f,%.3f) vel=(%.3f,%.3f)\n",
				float64(tick)*dt, pos[0], pos[1], vel[0], vel[1])
		}
	}
}
