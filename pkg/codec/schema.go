package codec

import "github.com/cqusn/smartcar/pkg/model"

type fieldKind int

const (
	kindText fieldKind = iota
	kindInt
	kindFloat
	kindTires
)

func (k fieldKind) String() string {
	switch k {
	case kindText:
		return "text"
	case kindInt:
		return "integer"
	case kindFloat:
		return "float"
	case kindTires:
		return "tires"
	default:
		return "unknown"
	}
}

// column is one positional slot of a line. Exactly one accessor is set, matching kind.
// Encode and decode both go through the same accessor.
type column struct {
	name  string
	kind  fieldKind
	text  func(r *model.Record) *string
	num   func(r *model.Record) *int
	float func(r *model.Record) *float64
	tires func(r *model.Record) *[]model.Tire
}

func textCol(name string, f func(r *model.Record) *string) column {
	return column{name: name, kind: kindText, text: f}
}

func intCol(name string, f func(r *model.Record) *int) column {
	return column{name: name, kind: kindInt, num: f}
}

func floatCol(name string, f func(r *model.Record) *float64) column {
	return column{name: name, kind: kindFloat, float: f}
}

// layout is the on-disk field order.
var layout = []column{
	textCol("carId", func(r *model.Record) *string { return &r.Car.ID }),
	textCol("studentId", func(r *model.Record) *string { return &r.Student.StudentID }),
	textCol("studentName", func(r *model.Record) *string { return &r.Student.Name }),
	textCol("chassisId", func(r *model.Record) *string { return &r.Car.Chassis.ID }),
	textCol("chassisModel", func(r *model.Record) *string { return &r.Car.Chassis.Model }),
	intCol("wheelbase", func(r *model.Record) *int { return &r.Car.Chassis.Wheelbase }),
	intCol("trackWidth", func(r *model.Record) *int { return &r.Car.Chassis.TrackWidth }),
	intCol("minGroundClearance", func(r *model.Record) *int { return &r.Car.Chassis.MinGroundClearance }),
	intCol("minTurningRadius", func(r *model.Record) *int { return &r.Car.Chassis.MinTurningRadius }),
	textCol("driveType", func(r *model.Record) *string { return &r.Car.Chassis.DriveType }),
	intCol("maxRange", func(r *model.Record) *int { return &r.Car.Chassis.MaxRange }),
	{name: "tires", kind: kindTires, tires: func(r *model.Record) *[]model.Tire { return &r.Car.Chassis.Tires }},
	textCol("agxModel", func(r *model.Record) *string { return &r.Car.AIModule.Model }),
	intCol("aiPerformance", func(r *model.Record) *int { return &r.Car.AIModule.AIPerformance }),
	intCol("cudaCores", func(r *model.Record) *int { return &r.Car.AIModule.CUDACores }),
	intCol("tensorCores", func(r *model.Record) *int { return &r.Car.AIModule.TensorCores }),
	intCol("memory", func(r *model.Record) *int { return &r.Car.AIModule.Memory }),
	intCol("storage", func(r *model.Record) *int { return &r.Car.AIModule.Storage }),
	textCol("cameraModel", func(r *model.Record) *string { return &r.Car.Camera.Model }),
	textCol("cameraId", func(r *model.Record) *string { return &r.Car.Camera.CameraID }),
	textCol("rgbResolution", func(r *model.Record) *string { return &r.Car.Camera.RGBResolution }),
	intCol("rgbFrameRate", func(r *model.Record) *int { return &r.Car.Camera.RGBFrameRate }),
	textCol("fov", func(r *model.Record) *string { return &r.Car.Camera.FOV }),
	intCol("depthFrameRate", func(r *model.Record) *int { return &r.Car.Camera.DepthFrameRate }),
	textCol("lidarModel", func(r *model.Record) *string { return &r.Car.Lidar.Model }),
	intCol("channels", func(r *model.Record) *int { return &r.Car.Lidar.Channels }),
	intCol("range", func(r *model.Record) *int { return &r.Car.Lidar.Range }),
	intCol("powerConsumption", func(r *model.Record) *int { return &r.Car.Lidar.PowerConsumption }),
	textCol("imuModel", func(r *model.Record) *string { return &r.Car.IMU.Model }),
	textCol("imuManufacturer", func(r *model.Record) *string { return &r.Car.IMU.Manufacturer }),
	floatCol("displaySize", func(r *model.Record) *float64 { return &r.Car.Display.Size }),
	textCol("displayModel", func(r *model.Record) *string { return &r.Car.Display.Model }),
	textCol("batteryParameters", func(r *model.Record) *string { return &r.Car.Battery.Parameters }),
	textCol("batteryExternalPower", func(r *model.Record) *string { return &r.Car.Battery.ExternalPower }),
	intCol("chargeTime", func(r *model.Record) *int { return &r.Car.Battery.ChargeTime }),
}

// tireSlot is the index of the tire block in layout
var tireSlot = func() int {
	for i, c := range layout {
		if c.kind == kindTires {
			return i
		}
	}
	panic("codec: layout has no tire column")
}()

// Field describes one slot of the line format
type Field struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Fields returns the line layout in order.
func Fields() []Field {
	fields := make([]Field, len(layout))
	for i, c := range layout {
		fields[i] = Field{Name: c.name, Kind: c.kind.String()}
	}
	return fields
}

// FieldNames returns the ordered field names of a line.
func FieldNames() []string {
	names := make([]string, len(layout))
	for i, c := range layout {
		names[i] = c.name
	}
	return names
}
