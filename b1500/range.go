package b1500

// RangeKind tells whether a range applies to voltage or to current.
type RangeKind uint8

const (
	VoltageKind RangeKind = iota + 1
	CurrentKind
)

func (k RangeKind) String() string {
	switch k {
	case VoltageKind:
		return "voltage"
	case CurrentKind:
		return "current"
	default:
		return "unknown"
	}
}

// OutputRange is a source output range. It is implemented only by
// VOutputRange and IOutputRange, so a type switch over it is exhaustive.
type OutputRange interface {
	Kind() RangeKind
	Code() int
	String() string
	outputRange()
}

// MeasureRange is a measurement range or ranging type. It is implemented
// only by VMeasRange and IMeasRange.
type MeasureRange interface {
	Kind() RangeKind
	Code() int
	String() string
	measureRange()
}

var (
	_ OutputRange  = VOutputRange(0)
	_ OutputRange  = IOutputRange(0)
	_ MeasureRange = VMeasRange(0)
	_ MeasureRange = IMeasRange(0)
)

// VOutputRange is a voltage output range. MIN_ values select limited auto
// ranging with the given lowest range.
type VOutputRange int

const (
	VOutputAuto     VOutputRange = 0
	VOutputMin0V2   VOutputRange = 2
	VOutputMin0V5   VOutputRange = 5
	VOutputMin2V    VOutputRange = 20
	VOutputMin5V    VOutputRange = 50
	VOutputMin20V   VOutputRange = 200
	VOutputMin40V   VOutputRange = 400
	VOutputMin100V  VOutputRange = 1000
	VOutputMin200V  VOutputRange = 2000
	VOutputMin500V  VOutputRange = 5000
	VOutputMin1500V VOutputRange = 15000
	VOutputMin3000V VOutputRange = 30000
)

var vOutputRangeNames = enum[VOutputRange]{
	VOutputAuto:     "AUTO",
	VOutputMin0V2:   "MIN_0V2",
	VOutputMin0V5:   "MIN_0V5",
	VOutputMin2V:    "MIN_2V",
	VOutputMin5V:    "MIN_5V",
	VOutputMin20V:   "MIN_20V",
	VOutputMin40V:   "MIN_40V",
	VOutputMin100V:  "MIN_100V",
	VOutputMin200V:  "MIN_200V",
	VOutputMin500V:  "MIN_500V",
	VOutputMin1500V: "MIN_1500V",
	VOutputMin3000V: "MIN_3000V",
}

func (VOutputRange) Kind() RangeKind { return VoltageKind }

func (r VOutputRange) Code() int { return int(r) }

func (r VOutputRange) String() string { return vOutputRangeNames.name(r) }

func (VOutputRange) outputRange() {}

// VOutputRanges returns every voltage output range, ordered by code.
func VOutputRanges() []VOutputRange { return vOutputRangeNames.values() }

// DecodeVOutputRange maps an instrument range code to a VOutputRange.
func DecodeVOutputRange(code int) (VOutputRange, error) {
	return vOutputRangeNames.decode("voltage output range", code)
}

// IOutputRange is a current output range. MIN_ values select limited auto
// ranging with the given lowest range.
type IOutputRange int

const (
	IOutputAuto     IOutputRange = 0
	IOutputMin1pA   IOutputRange = 8
	IOutputMin10pA  IOutputRange = 9
	IOutputMin100pA IOutputRange = 10
	IOutputMin1nA   IOutputRange = 11
	IOutputMin10nA  IOutputRange = 12
	IOutputMin100nA IOutputRange = 13
	IOutputMin1uA   IOutputRange = 14
	IOutputMin10uA  IOutputRange = 15
	IOutputMin100uA IOutputRange = 16
	IOutputMin1mA   IOutputRange = 17
	IOutputMin10mA  IOutputRange = 18
	IOutputMin100mA IOutputRange = 19
	IOutputMin1A    IOutputRange = 20
	IOutputMin2A    IOutputRange = 21
	IOutputMin20A   IOutputRange = 22
	IOutputMin40A   IOutputRange = 23
)

var iOutputRangeNames = enum[IOutputRange]{
	IOutputAuto:     "AUTO",
	IOutputMin1pA:   "MIN_1pA",
	IOutputMin10pA:  "MIN_10pA",
	IOutputMin100pA: "MIN_100pA",
	IOutputMin1nA:   "MIN_1nA",
	IOutputMin10nA:  "MIN_10nA",
	IOutputMin100nA: "MIN_100nA",
	IOutputMin1uA:   "MIN_1uA",
	IOutputMin10uA:  "MIN_10uA",
	IOutputMin100uA: "MIN_100uA",
	IOutputMin1mA:   "MIN_1mA",
	IOutputMin10mA:  "MIN_10mA",
	IOutputMin100mA: "MIN_100mA",
	IOutputMin1A:    "MIN_1A",
	IOutputMin2A:    "MIN_2A",
	IOutputMin20A:   "MIN_20A",
	IOutputMin40A:   "MIN_40A",
}

func (IOutputRange) Kind() RangeKind { return CurrentKind }

func (r IOutputRange) Code() int { return int(r) }

func (r IOutputRange) String() string { return iOutputRangeNames.name(r) }

func (IOutputRange) outputRange() {}

// IOutputRanges returns every current output range, ordered by code.
func IOutputRanges() []IOutputRange { return iOutputRangeNames.values() }

// DecodeIOutputRange maps an instrument range code to a IOutputRange.
func DecodeIOutputRange(code int) (IOutputRange, error) {
	return iOutputRangeNames.decode("current output range", code)
}

// VMeasRange is a voltage measurement range. MIN_ values select limited auto
// ranging, FIX_ values a fixed range.
type VMeasRange int

const (
	VMeasAuto     VMeasRange = 0
	VMeasMin0V2   VMeasRange = 2
	VMeasMin0V5   VMeasRange = 5
	VMeasMin2V    VMeasRange = 20
	VMeasMin5V    VMeasRange = 50
	VMeasMin20V   VMeasRange = 200
	VMeasMin40V   VMeasRange = 400
	VMeasMin100V  VMeasRange = 1000
	VMeasMin200V  VMeasRange = 2000
	VMeasMin500V  VMeasRange = 5000
	VMeasMin1500V VMeasRange = 15000
	VMeasMin3000V VMeasRange = 30000
	VMeasFix0V2   VMeasRange = -2
	VMeasFix0V5   VMeasRange = -5
	VMeasFix2V    VMeasRange = -20
	VMeasFix5V    VMeasRange = -50
	VMeasFix20V   VMeasRange = -200
	VMeasFix40V   VMeasRange = -400
	VMeasFix100V  VMeasRange = -1000
	VMeasFix200V  VMeasRange = -2000
	VMeasFix500V  VMeasRange = -5000
	VMeasFix1500V VMeasRange = -15000
	VMeasFix3000V VMeasRange = -30000
)

var vMeasRangeNames = enum[VMeasRange]{
	VMeasAuto:     "AUTO",
	VMeasMin0V2:   "MIN_0V2",
	VMeasMin0V5:   "MIN_0V5",
	VMeasMin2V:    "MIN_2V",
	VMeasMin5V:    "MIN_5V",
	VMeasMin20V:   "MIN_20V",
	VMeasMin40V:   "MIN_40V",
	VMeasMin100V:  "MIN_100V",
	VMeasMin200V:  "MIN_200V",
	VMeasMin500V:  "MIN_500V",
	VMeasMin1500V: "MIN_1500V",
	VMeasMin3000V: "MIN_3000V",
	VMeasFix0V2:   "FIX_0V2",
	VMeasFix0V5:   "FIX_0V5",
	VMeasFix2V:    "FIX_2V",
	VMeasFix5V:    "FIX_5V",
	VMeasFix20V:   "FIX_20V",
	VMeasFix40V:   "FIX_40V",
	VMeasFix100V:  "FIX_100V",
	VMeasFix200V:  "FIX_200V",
	VMeasFix500V:  "FIX_500V",
	VMeasFix1500V: "FIX_1500V",
	VMeasFix3000V: "FIX_3000V",
}

func (VMeasRange) Kind() RangeKind { return VoltageKind }

func (r VMeasRange) Code() int { return int(r) }

func (r VMeasRange) String() string { return vMeasRangeNames.name(r) }

func (VMeasRange) measureRange() {}

// DecodeVMeasRange maps an instrument range code to a VMeasRange.
func DecodeVMeasRange(code int) (VMeasRange, error) {
	return vMeasRangeNames.decode("voltage measurement range", code)
}

// IMeasRange is a current measurement range. MIN_ values select limited auto
// ranging, FIX_ values a fixed range.
type IMeasRange int

const (
	IMeasAuto     IMeasRange = 0
	IMeasMin1pA   IMeasRange = 8
	IMeasMin10pA  IMeasRange = 9
	IMeasMin100pA IMeasRange = 10
	IMeasMin1nA   IMeasRange = 11
	IMeasMin10nA  IMeasRange = 12
	IMeasMin100nA IMeasRange = 13
	IMeasMin1uA   IMeasRange = 14
	IMeasMin10uA  IMeasRange = 15
	IMeasMin100uA IMeasRange = 16
	IMeasMin1mA   IMeasRange = 17
	IMeasMin10mA  IMeasRange = 18
	IMeasMin100mA IMeasRange = 19
	IMeasMin1A    IMeasRange = 20
	IMeasMin2A    IMeasRange = 21
	IMeasMin20A   IMeasRange = 22
	IMeasMin40A   IMeasRange = 23
	IMeasFix1pA   IMeasRange = -8
	IMeasFix10pA  IMeasRange = -9
	IMeasFix100pA IMeasRange = -10
	IMeasFix1nA   IMeasRange = -11
	IMeasFix10nA  IMeasRange = -12
	IMeasFix100nA IMeasRange = -13
	IMeasFix1uA   IMeasRange = -14
	IMeasFix10uA  IMeasRange = -15
	IMeasFix100uA IMeasRange = -16
	IMeasFix1mA   IMeasRange = -17
	IMeasFix10mA  IMeasRange = -18
	IMeasFix100mA IMeasRange = -19
	IMeasFix1A    IMeasRange = -20
	IMeasFix2A    IMeasRange = -21
	IMeasFix20A   IMeasRange = -22
	IMeasFix40A   IMeasRange = -23
)

var iMeasRangeNames = enum[IMeasRange]{
	IMeasAuto:     "AUTO",
	IMeasMin1pA:   "MIN_1pA",
	IMeasMin10pA:  "MIN_10pA",
	IMeasMin100pA: "MIN_100pA",
	IMeasMin1nA:   "MIN_1nA",
	IMeasMin10nA:  "MIN_10nA",
	IMeasMin100nA: "MIN_100nA",
	IMeasMin1uA:   "MIN_1uA",
	IMeasMin10uA:  "MIN_10uA",
	IMeasMin100uA: "MIN_100uA",
	IMeasMin1mA:   "MIN_1mA",
	IMeasMin10mA:  "MIN_10mA",
	IMeasMin100mA: "MIN_100mA",
	IMeasMin1A:    "MIN_1A",
	IMeasMin2A:    "MIN_2A",
	IMeasMin20A:   "MIN_20A",
	IMeasMin40A:   "MIN_40A",
	IMeasFix1pA:   "FIX_1pA",
	IMeasFix10pA:  "FIX_10pA",
	IMeasFix100pA: "FIX_100pA",
	IMeasFix1nA:   "FIX_1nA",
	IMeasFix10nA:  "FIX_10nA",
	IMeasFix100nA: "FIX_100nA",
	IMeasFix1uA:   "FIX_1uA",
	IMeasFix10uA:  "FIX_10uA",
	IMeasFix100uA: "FIX_100uA",
	IMeasFix1mA:   "FIX_1mA",
	IMeasFix10mA:  "FIX_10mA",
	IMeasFix100mA: "FIX_100mA",
	IMeasFix1A:    "FIX_1A",
	IMeasFix2A:    "FIX_2A",
	IMeasFix20A:   "FIX_20A",
	IMeasFix40A:   "FIX_40A",
}

func (IMeasRange) Kind() RangeKind { return CurrentKind }

func (r IMeasRange) Code() int { return int(r) }

func (r IMeasRange) String() string { return iMeasRangeNames.name(r) }

func (IMeasRange) measureRange() {}

// DecodeIMeasRange maps an instrument range code to a IMeasRange.
func DecodeIMeasRange(code int) (IMeasRange, error) {
	return iMeasRangeNames.decode("current measurement range", code)
}
