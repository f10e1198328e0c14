// Package codec provides the text line format used to persist smart car records.
//
// Each record (a car and its assigned student) is written as a single line of
// comma-separated fields. The file has no header, and every line ends with '\n'.
//
// # Line Format
//
//	carId,studentId,studentName,chassisId,chassisModel,wheelbase,trackWidth,
//	minGroundClearance,minTurningRadius,driveType,maxRange,<tires>,agxModel,
//	aiPerformance,cudaCores,tensorCores,memory,storage,cameraModel,cameraId,
//	rgbResolution,rgbFrameRate,fov,depthFrameRate,lidarModel,channels,range,
//	powerConsumption,imuModel,imuManufacturer,displaySize,displayModel,
//	batteryParameters,batteryExternalPower,chargeTime
//
// The <tires> slot holds every tire of the chassis as model,size pairs joined by
// ';', for example:
//
//	公路轮,175;麦克纳姆轮,175
//
// A chassis without tires leaves the slot empty. The field order is defined once,
// in a single column list, and both directions walk that list. FieldNames returns it.
//
// # Decoding
//
// The tire block itself contains commas, so lines are not split by position
// alone. The eleven columns before the block and the twenty-three after it are
// fixed, and the block takes whatever segments remain between them. ParseTires
// then splits it on ';' and ','.
//
// Blank lines are ignored. Numeric fields are parsed with strconv.
//
// # Policies
//
// PolicyPermissive (the default) turns an empty numeric field into zero. An
// unparsable numeric field also becomes zero and is recorded in Report.Defaulted.
// Lines with too few fields are skipped and recorded in Report.Skipped.
//
// PolicyStrict aborts the decode on the first empty or unparsable numeric field or
// short line, returning a *FieldError or *LineError. When encoding, it rejects text
// values containing ',', ';', '\n' or '\r' with ErrReservedCharacter.
//
// # Limitations
//
// The format has no escaping. Under the permissive policy, a text value containing a
// separator is written unchanged, and that line will not decode back to the same record.
package codec
