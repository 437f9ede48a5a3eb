package translate

// Station is one row of the weather-station table: an H2K place name
// with the coordinates and EPW weather file the simulation engine
// consumes. The table is immutable and shared across concurrent runs.
type Station struct {
	Name      string
	Province  string
	Latitude  float64
	Longitude float64
	EPW       string
}

// stations is the fixed location table. Matching is by folded name
// first (Montréal and MONTREAL both hit), then nearest-by-haversine
// when the document supplies coordinates.
var stations = []Station{
	{"Calgary", "AB", 51.12, -114.02, "CAN_AB_Calgary.718770_CWEC.epw"},
	{"Edmonton", "AB", 53.32, -113.58, "CAN_AB_Edmonton.711230_CWEC.epw"},
	{"Vancouver", "BC", 49.18, -123.17, "CAN_BC_Vancouver.718920_CWEC.epw"},
	{"Victoria", "BC", 48.65, -123.43, "CAN_BC_Victoria.717990_CWEC.epw"},
	{"Winnipeg", "MB", 49.90, -97.23, "CAN_MB_Winnipeg.718520_CWEC.epw"},
	{"Fredericton", "NB", 45.87, -66.53, "CAN_NB_Fredericton.717000_CWEC.epw"},
	{"St. John's", "NL", 47.62, -52.73, "CAN_NL_St.Johns.718010_CWEC.epw"},
	{"Halifax", "NS", 44.88, -63.50, "CAN_NS_Halifax.713950_CWEC.epw"},
	{"Yellowknife", "NT", 62.47, -114.43, "CAN_NT_Yellowknife.719360_CWEC.epw"},
	{"Ottawa", "ON", 45.32, -75.67, "CAN_ON_Ottawa.716280_CWEC.epw"},
	{"Toronto", "ON", 43.67, -79.63, "CAN_ON_Toronto.716240_CWEC.epw"},
	{"Thunder Bay", "ON", 48.37, -89.32, "CAN_ON_Thunder.Bay.717490_CWEC.epw"},
	{"Charlottetown", "PE", 46.28, -63.13, "CAN_PE_Charlottetown.717060_CWEC.epw"},
	{"Montréal", "QC", 45.47, -73.75, "CAN_PQ_Montreal.716270_CWEC.epw"},
	{"Québec", "QC", 46.80, -71.38, "CAN_PQ_Quebec.717140_CWEC.epw"},
	{"Regina", "SK", 50.43, -104.67, "CAN_SK_Regina.718630_CWEC.epw"},
	{"Saskatoon", "SK", 52.17, -106.68, "CAN_SK_Saskatoon.718660_CWEC.epw"},
	{"Whitehorse", "YT", 60.72, -135.07, "CAN_YT_Whitehorse.719640_CWEC.epw"},
}
