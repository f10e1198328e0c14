package codec

import (
	"strconv"

	"github.com/cqusn/smartcar/pkg/model"
)

func testRecord(i int) model.Record {
	return model.Record{
		Car: model.Car{
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
					{Model: "公路轮", Size: 175 + i},
					{Model: "麦克纳姆轮", Size: 175 + i},
					{Model: "公路轮", Size: 175 + i},
					{Model: "麦克纳姆轮", Size: 175 + i},
				},
			},
			AIModule: model.AIModule{Model: "AGX 赛维尔", AIPerformance: 30 + i, CUDACores: 512 + i*10, TensorCores: 64, Memory: 32, Storage: 64},
			Camera:   model.Camera{Model: "超清摄像头", CameraID: "D430", RGBResolution: "1920*1080", RGBFrameRate: 30 + i, FOV: "90度", DepthFrameRate: 30},
			Lidar:    model.Lidar{Model: "激光雷达", Channels: 16 + i, Range: 100 + i*5, PowerConsumption: 10},
			IMU:      model.IMU{Model: "IMU型号" + strconv.Itoa(i), Manufacturer: "制造商" + strconv.Itoa(i)},
			Display:  model.Display{Size: 11.6, Model: "显示器" + strconv.Itoa(i)},
			Battery:  model.Battery{Parameters: "24V/20Ah", ExternalPower: "24V", ChargeTime: 1 + i},
		},
		Student: model.Student{StudentID: "S" + strconv.Itoa(1000+i), Name: "学生" + strconv.Itoa(i+1)},
	}
}

func testRecords(n int) ([]model.Car, []model.Student) {
	records := make([]model.Record, n)
	for i := range records {
		records[i] = testRecord(i)
	}
	return model.Split(records)
}

// firstLine is testRecord(0) as encoded
const firstLine = "cqusn100000,S1000,学生1,dp100000,迷你侦察车,450,490,120,0,四轮驱动,12," +
	"公路轮,175;麦克纳姆轮,175;公路轮,175;麦克纳姆轮,175," +
	"AGX 赛维尔,30,512,64,32,64,超清摄像头,D430,1920*1080,30,90度,30," +
	"激光雷达,16,100,10,IMU型号0,制造商0,11.6,显示器0,24V/20Ah,24V,1"
