// Package model defines the smart car registry records.
package model

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when cars and students are not paired one to one.
var ErrLengthMismatch = errors.New("cars and students have different lengths")

// Tire describes one wheel mounted on a chassis
type Tire struct {
	Model string `json:"model"`
	Size  int    `json:"size"` // mm
}

// Chassis holds the drive platform of a car
type Chassis struct {
	ID                 string `json:"id"`
	Model              string `json:"model"`
	Wheelbase          int    `json:"wheelbase"`            // mm
	TrackWidth         int    `json:"track_width"`          // mm
	MinGroundClearance int    `json:"min_ground_clearance"` // mm
	MinTurningRadius   int    `json:"min_turning_radius"`   // m
	DriveType          string `json:"drive_type"`
	MaxRange           int    `json:"max_range"` // km
	Tires              []Tire `json:"tires"`
}

// AIModule is the onboard compute unit (AGX)
type AIModule struct {
	Model         string `json:"model"`
	AIPerformance int    `json:"ai_performance"` // TOPS
	CUDACores     int    `json:"cuda_cores"`
	TensorCores   int    `json:"tensor_cores"`
	Memory        int    `json:"memory"`  // GB
	Storage       int    `json:"storage"` // GB
}

// Camera is the depth camera
type Camera struct {
	Model          string `json:"model"`
	CameraID       string `json:"camera_id"`
	RGBResolution  string `json:"rgb_resolution"`
	RGBFrameRate   int    `json:"rgb_frame_rate"`
	FOV            string `json:"fov"`
	DepthFrameRate int    `json:"depth_frame_rate"`
}

// Lidar is the laser range scanner
type Lidar struct {
	Model            string `json:"model"`
	Channels         int    `json:"channels"`
	Range            int    `json:"range"`             // m
	PowerConsumption int    `json:"power_consumption"` // W
}

// IMU is the inertial measurement unit
type IMU struct {
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
}

// Display is the onboard screen
type Display struct {
	Size  float64 `json:"size"` // inches
	Model string  `json:"model"`
}

// Battery is the power pack
type Battery struct {
	Parameters    string `json:"parameters"`
	ExternalPower string `json:"external_power"`
	ChargeTime    int    `json:"charge_time"` // hours
}

// Car is a smart car. It owns each of its components.
type Car struct {
	ID       string   `json:"id"`
	Chassis  Chassis  `json:"chassis"`
	AIModule AIModule `json:"ai_module"`
	Camera   Camera   `json:"camera"`
	Lidar    Lidar    `json:"lidar"`
	IMU      IMU      `json:"imu"`
	Display  Display  `json:"display"`
	Battery  Battery  `json:"battery"`
}

// Student is the person a car is assigned to
type Student struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// Record pairs a car with its assigned student
type Record struct {
	Car     Car     `json:"car"`
	Student Student `json:"student"`
}

// Pair zips parallel car and student sequences into records.
func Pair(cars []Car, students []Student) ([]Record, error) {
	if len(cars) != len(students) {
		return nil, fmt.Errorf("%w: %d cars, %d students", ErrLengthMismatch, len(cars), len(students))
	}

	records := make([]Record, len(cars))
	for i := range cars {
		records[i] = Record{Car: cars[i], Student: students[i]}
	}
	return records, nil
}

// Split is the inverse of Pair
func Split(records []Record) ([]Car, []Student) {
	cars := make([]Car, len(records))
	students := make([]Student, len(records))
	for i, r := range records {
		cars[i] = r.Car
		students[i] = r.Student
	}
	return cars, students
}
