package geotag

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// MissingFieldError reports a required GPS field absent from an image.
type MissingFieldError struct {
	Image string
	Field FieldName
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.Image, e.Field)
}

// MalformedFieldError reports a GPS field whose value has the wrong shape.
type MalformedFieldError struct {
	Image string
	Field FieldName
	Value Value
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("%s: malformed %s %v", e.Image, e.Field, e.Value)
}

// requiredFields must all be present before a record gains decimal GPS.
var requiredFields = [...]FieldName{
	GPSLatitude, GPSLatitudeRef,
	GPSLongitude, GPSLongitudeRef,
	GPSAltitude, GPSAltitudeRef,
}

type gpsFields struct {
	latitude, longitude []Number
	latitudeRef         Value
	longitudeRef        Value
	altitude            Number
	altitudeRef         Value
}

// gatherGPS collects the six required fields of rec, or reports the first
// one missing or malformed.
func gatherGPS(rec *ImageRecord) (gpsFields, error) {
	for _, name := range requiredFields {
		if _, ok := rec.RawGPS[name]; !ok {
			return gpsFields{}, &MissingFieldError{Image: rec.Name, Field: name}
		}
	}

	var f gpsFields
	var err error
	if f.latitude, err = triple(rec, GPSLatitude); err != nil {
		return gpsFields{}, err
	}
	if f.longitude, err = triple(rec, GPSLongitude); err != nil {
		return gpsFields{}, err
	}
	alt, ok := rec.RawGPS[GPSAltitude].Numbers()
	if !ok || len(alt) == 0 {
		return gpsFields{}, &MalformedFieldError{Image: rec.Name, Field: GPSAltitude, Value: rec.RawGPS[GPSAltitude]}
	}
	f.altitude = alt[0]
	f.latitudeRef = rec.RawGPS[GPSLatitudeRef]
	f.longitudeRef = rec.RawGPS[GPSLongitudeRef]
	f.altitudeRef = rec.RawGPS[GPSAltitudeRef]
	return f, nil
}

func triple(rec *ImageRecord, name FieldName) ([]Number, error) {
	v := rec.RawGPS[name]
	nums, ok := v.Numbers()
	if !ok || len(nums) < 3 {
		return nil, &MalformedFieldError{Image: rec.Name, Field: name, Value: v}
	}
	return nums[:3], nil
}

// ToDecimalDegrees converts a degrees/minutes/seconds triple.
func ToDecimalDegrees(d, m, s Number) float64 {
	return d.Float() + m.Float()/60.0 + s.Float()/3600.0
}

func hasText(v Value, want string) bool {
	s, ok := v.Text()
	return ok && s == want
}

// isSeaLevelRef reports whether an altitude reference is the numeric code 0.
func isSeaLevelRef(v Value) bool {
	nums, ok := v.Numbers()
	return ok && len(nums) == 1 && nums[0].Float() == 0
}

func (f gpsFields) decimal() DecimalGPS {
	lat := ToDecimalDegrees(f.latitude[0], f.latitude[1], f.latitude[2])
	if !hasText(f.latitudeRef, "N") {
		lat = -lat
	}
	lon := ToDecimalDegrees(f.longitude[0], f.longitude[1], f.longitude[2])
	if !hasText(f.longitudeRef, "E") {
		lon = -lon
	}
	alt := f.altitude.Float()
	if !isSeaLevelRef(f.altitudeRef) {
		alt = -alt
	}
	return DecimalGPS{Latitude: lat, Longitude: lon, Altitude: alt}
}

// Convert sets GPS on every record whose raw block holds the six required
// fields. Records that cannot be converted are logged and left without GPS.
// It returns the number of records converted.
func Convert(records *Records, log logrus.FieldLogger) int {
	converted := 0
	for _, rec := range records.All() {
		f, err := gatherGPS(rec)
		if err != nil {
			entry := log.WithField("image", rec.Name)
			var missing *MissingFieldError
			var malformed *MalformedFieldError
			switch {
			case errors.As(err, &missing):
				entry = entry.WithField("field", missing.Field)
			case errors.As(err, &malformed):
				entry = entry.WithField("field", malformed.Field)
			}
			entry.Error("Cannot convert the GPS coordinates of " + rec.Name)
			continue
		}
		gps := f.decimal()
		rec.GPS = &gps
		converted++
	}
	return converted
}
