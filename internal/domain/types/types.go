package types

// VehicleClass is the closed set of bookable vehicle classes.
type VehicleClass string

const (
	ClassSedan VehicleClass = "sedan"
	ClassSUV   VehicleClass = "suv"
	ClassVan   VehicleClass = "van"
)

func (c VehicleClass) String() string {
	return string(c)
}

// VehicleClasses lists every valid class, in display order.
func VehicleClasses() []VehicleClass {
	return []VehicleClass{ClassSedan, ClassSUV, ClassVan}
}

// IsValid reports whether c is one of the known classes.
func (c VehicleClass) IsValid() bool {
	switch c {
	case ClassSedan, ClassSUV, ClassVan:
		return true
	default:
		return false
	}
}

// UserRole mirrors the roles issued by the external auth service.
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RoleRider  UserRole = "RIDER"
	RoleDriver UserRole = "DRIVER"
	RoleAdmin  UserRole = "ADMIN"
)

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// MeterStatus is the lifecycle state of a running taxi meter.
type MeterStatus string

const (
	MeterRunning   MeterStatus = "RUNNING"
	MeterCompleted MeterStatus = "COMPLETED"
)

// RatePeriod selects the tariff period a meter was started under.
type RatePeriod string

const (
	PeriodDay   RatePeriod = "day"
	PeriodNight RatePeriod = "night"
)
