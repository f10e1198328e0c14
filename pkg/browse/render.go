package browse

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cqusn/smartcar/pkg/model"
)

const separator = "------------------------------------"

// Render writes a labeled description of one record
func Render(w io.Writer, car model.Car, student model.Student) error {
	var sb strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line("小车编号: %s", car.ID)
	line("分配学生: %s, %s", student.StudentID, student.Name)

	c := car.Chassis
	line("底盘编号: %s", c.ID)
	line("底盘型号: %s", c.Model)
	line("轴距: %d mm", c.Wheelbase)
	line("轮距: %d mm", c.TrackWidth)
	line("最小离地间隙: %d mm", c.MinGroundClearance)
	line("最小转弯半径: %d m", c.MinTurningRadius)
	line("驱动形式: %s", c.DriveType)
	line("最大行程: %d KM", c.MaxRange)

	line("轮胎信息:")
	for _, t := range c.Tires {
		line("  型号: %s, 尺寸: %d mm", t.Model, t.Size)
	}

	a := car.AIModule
	line("AGX模块型号: %s", a.Model)
	line("AI性能: %d TOPS", a.AIPerformance)
	line("CUDA核心数: %d", a.CUDACores)
	line("Tensor核心数: %d", a.TensorCores)
	line("显存: %d G", a.Memory)
	line("存储: %d G", a.Storage)

	cam := car.Camera
	line("摄像头型号: %s", cam.Model)
	line("摄像头ID: %s", cam.CameraID)
	line("RGB分辨率: %s", cam.RGBResolution)
	line("RGB帧率: %d FPS", cam.RGBFrameRate)
	line("视场角: %s", cam.FOV)
	line("深度帧率: %d FPS", cam.DepthFrameRate)

	l := car.Lidar
	line("激光雷达型号: %s", l.Model)
	line("通道数: %d", l.Channels)
	line("测试范围: %d m", l.Range)
	line("功耗: %d W", l.PowerConsumption)

	line("陀螺仪型号: %s", car.IMU.Model)
	line("厂家: %s", car.IMU.Manufacturer)

	line("显示器尺寸: %s 英寸", FormatSize(car.Display.Size))
	line("显示器型号: %s", car.Display.Model)

	b := car.Battery
	line("电池参数: %s", b.Parameters)
	line("对外供电: %s", b.ExternalPower)
	line("充电时长: %d 小时", b.ChargeTime)
	line(separator)

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatSize prints a display size with up to six significant digits
func FormatSize(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
