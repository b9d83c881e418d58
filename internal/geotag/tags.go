package geotag

// FieldName is the canonical EXIF name of a GPS sub-field.
type FieldName string

const (
	GPSVersionID        FieldName = "GPSVersionID"
	GPSLatitudeRef      FieldName = "GPSLatitudeRef"
	GPSLatitude         FieldName = "GPSLatitude"
	GPSLongitudeRef     FieldName = "GPSLongitudeRef"
	GPSLongitude        FieldName = "GPSLongitude"
	GPSAltitudeRef      FieldName = "GPSAltitudeRef"
	GPSAltitude         FieldName = "GPSAltitude"
	GPSTimeStamp        FieldName = "GPSTimeStamp"
	GPSSatellites       FieldName = "GPSSatellites"
	GPSStatus           FieldName = "GPSStatus"
	GPSMeasureMode      FieldName = "GPSMeasureMode"
	GPSDOP              FieldName = "GPSDOP"
	GPSSpeedRef         FieldName = "GPSSpeedRef"
	GPSSpeed            FieldName = "GPSSpeed"
	GPSTrackRef         FieldName = "GPSTrackRef"
	GPSTrack            FieldName = "GPSTrack"
	GPSImgDirectionRef  FieldName = "GPSImgDirectionRef"
	GPSImgDirection     FieldName = "GPSImgDirection"
	GPSMapDatum         FieldName = "GPSMapDatum"
	GPSDestLatitudeRef  FieldName = "GPSDestLatitudeRef"
	GPSDestLatitude     FieldName = "GPSDestLatitude"
	GPSDestLongitudeRef FieldName = "GPSDestLongitudeRef"
	GPSDestLongitude    FieldName = "GPSDestLongitude"
	GPSDestBearingRef   FieldName = "GPSDestBearingRef"
	GPSDestBearing      FieldName = "GPSDestBearing"
	GPSDestDistanceRef  FieldName = "GPSDestDistanceRef"
	GPSDestDistance     FieldName = "GPSDestDistance"
	GPSProcessingMethod FieldName = "GPSProcessingMethod"
	GPSAreaInformation  FieldName = "GPSAreaInformation"
	GPSDateStamp        FieldName = "GPSDateStamp"
	GPSDifferential     FieldName = "GPSDifferential"
	GPSHPositioningErr  FieldName = "GPSHPositioningError"
)

// gpsTagNames maps GPS IFD tag codes (EXIF 2.3) to field names.
var gpsTagNames = map[uint16]FieldName{
	0x00: GPSVersionID,
	0x01: GPSLatitudeRef,
	0x02: GPSLatitude,
	0x03: GPSLongitudeRef,
	0x04: GPSLongitude,
	0x05: GPSAltitudeRef,
	0x06: GPSAltitude,
	0x07: GPSTimeStamp,
	0x08: GPSSatellites,
	0x09: GPSStatus,
	0x0a: GPSMeasureMode,
	0x0b: GPSDOP,
	0x0c: GPSSpeedRef,
	0x0d: GPSSpeed,
	0x0e: GPSTrackRef,
	0x0f: GPSTrack,
	0x10: GPSImgDirectionRef,
	0x11: GPSImgDirection,
	0x12: GPSMapDatum,
	0x13: GPSDestLatitudeRef,
	0x14: GPSDestLatitude,
	0x15: GPSDestLongitudeRef,
	0x16: GPSDestLongitude,
	0x17: GPSDestBearingRef,
	0x18: GPSDestBearing,
	0x19: GPSDestDistanceRef,
	0x1a: GPSDestDistance,
	0x1b: GPSProcessingMethod,
	0x1c: GPSAreaInformation,
	0x1d: GPSDateStamp,
	0x1e: GPSDifferential,
	0x1f: GPSHPositioningErr,
}

// TagName returns the field name for a GPS tag code.
func TagName(code uint16) (FieldName, bool) {
	name, ok := gpsTagNames[code]
	return name, ok
}
