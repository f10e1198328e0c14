// Package sample generates the demo fleet of smart cars and their students.
package sample

import (
	"math"
	"strconv"

	"github.com/cqusn/smartcar/pkg/model"
)

// DefaultCount is the size of the demo fleet
const DefaultCount = 10

// Generate returns n deterministic car/student pairs
func Generate(n int) ([]model.Car, []model.Student) {
	if n < 0 {
		n = 0
	}

	cars := make([]model.Car, n)
	students := make([]model.Student, n)
	for i := 0; i < n; i++ {
		cars[i] = Car(i)
		students[i] = Student(i)
	}
	return cars, students
}

// Student returns the i-th demo student
func Student(i int) model.Student {
	return model.Student{
		StudentID: "S" + strconv.Itoa(1000+i),
		Name:      "学生" + strconv.Itoa(i+1),
	}
}

// Car returns the i-th demo car
func Car(i int) model.Car {
	suffix := strconv.Itoa(i)
	tireSize := 175 + i

	return model.Car{
		ID: "cqusn" + strconv.Itoa(100000+i),
		Chassis: model.Chassis{
			ID:                 "dp" + strconv.Itoa(100000+i),
			Model:              "迷你侦察车",
			Wheelbase:          450 + i*5,
			TrackWidth:         490 + i*3,
			MinGroundClearance: 120,
			MinTurningRadius:   0,
			DriveType:          "四轮驱动",
			MaxRange:           12 + i,
			Tires: []model.Tire{
				{Model: "公路轮", Size: tireSize},
				{Model: "麦克纳姆轮", Size: tireSize},
				{Model: "公路轮", Size: tireSize},
				{Model: "麦克纳姆轮", Size: tireSize},
			},
		},
		AIModule: model.AIModule{
			Model:         "AGX 赛维尔",
			AIPerformance: 30 + i,
			CUDACores:     512 + i*10,
			TensorCores:   64,
			Memory:        32,
			Storage:       64,
		},
		Camera: model.Camera{
			Model:          "超清摄像头",
			CameraID:       "D430",
			RGBResolution:  "1920*1080",
			RGBFrameRate:   30 + i,
			FOV:            "90度",
			DepthFrameRate: 30,
		},
		Lidar: model.Lidar{
			Model:            "激光雷达",
			Channels:         16 + i,
			Range:            100 + i*5,
			PowerConsumption: 10,
		},
		IMU: model.IMU{
			Model:        "IMU型号" + suffix,
			Manufacturer: "制造商" + suffix,
		},
		Display: model.Display{
			// one decimal, 11.6 11.8 12.0 ...
			Size:  math.Round((11.6+float64(i)*0.2)*10) / 10,
			Model: "显示器" + suffix,
		},
		Battery: model.Battery{
			Parameters:    "24V/20Ah",
			ExternalPower: "24V",
			ChargeTime:    1 + i,
		},
	}
}
