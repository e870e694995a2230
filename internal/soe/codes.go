package soe

// Status word layouts, one table per decode family. Codes 1..16 name the
// off/down states and 17..32 the on/up states. ATV spans 1..64.

// aiCodes covers AnalogIn and AnalogInCalc.
var aiCodes = newCodeTable("AI", []EventCode{
	{Code: 1, Key: "AL_LA_EN_Off", Description: "AL LA EN - Off"},
	{Code: 2, Key: "AL_LW_EN_Off", Description: "AL LW EN - Off"},
	{Code: 3, Key: "AL_HW_EN_Off", Description: "AL HW EN - Off"},
	{Code: 4, Key: "AL_HA_EN_Off", Description: "AL HA EN - Off"},
	{Code: 5, Key: "FORCE_CMD_Off", Description: "FORCE CMD - Off"},
	{Code: 6, Key: "Reserve_Off_22", Description: "Reserve - Off"},
	{Code: 7, Key: "Reserve_Off_23", Description: "Reserve - Off"},
	{Code: 8, Key: "Reserve_Off_24", Description: "Reserve - Off"},
	{Code: 9, Key: "AL_LA_Down", Description: "AL LA - Down"},
	{Code: 10, Key: "AL_LW_Down", Description: "AL LW - Down"},
	{Code: 11, Key: "AL_HW_Down", Description: "AL HW - Down"},
	{Code: 12, Key: "AL_HA_Down", Description: "AL HA - Down"},
	{Code: 13, Key: "AL_A_Down", Description: "AL A - Down"},
	{Code: 14, Key: "AL_W_Down", Description: "AL W - Down"},
	{Code: 15, Key: "AL_HEALTH_Down", Description: "AL HEALTH - Down"},
	{Code: 16, Key: "Reserve_Off_32", Description: "Reserve - Off"},
	{Code: 17, Key: "AL_LA_EN_On", Description: "AL LA EN - On"},
	{Code: 18, Key: "AL_LW_EN_On", Description: "AL LW EN - On"},
	{Code: 19, Key: "AL_HW_EN_On", Description: "AL HW EN - On"},
	{Code: 20, Key: "AL_HA_EN_On", Description: "AL HA EN - On"},
	{Code: 21, Key: "FORCE_CMD_On", Description: "FORCE CMD - On"},
	{Code: 22, Key: "Reserve_On_06", Description: "Reserve - On"},
	{Code: 23, Key: "Reserve_On_07", Description: "Reserve - On"},
	{Code: 24, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 25, Key: "AL_LA_Up", Description: "AL LA - Up"},
	{Code: 26, Key: "AL_LW_Up", Description: "AL LW - Up"},
	{Code: 27, Key: "AL_HW_Up", Description: "AL HW - Up"},
	{Code: 28, Key: "AL_HA_Up", Description: "AL HA - Up"},
	{Code: 29, Key: "AL_A_Up", Description: "AL A - Up"},
	{Code: 30, Key: "AL_W_Up", Description: "AL W - Up"},
	{Code: 31, Key: "AL_HEALTH_Up", Description: "AL HEALTH - Up"},
	{Code: 32, Key: "Reserve_On_16", Description: "Reserve - On"},
})

// aoCodes covers analog output valves (ValveA).
var aoCodes = newCodeTable("AO", []EventCode{
	{Code: 1, Key: "MODE_Man", Description: "MODE - Man"},
	{Code: 2, Key: "AL_LA_EN_Off", Description: "AL LA EN - Off"},
	{Code: 3, Key: "AL_LW_EN_Off", Description: "AL LW EN - Off"},
	{Code: 4, Key: "AL_HW_EN_Off", Description: "AL HW EN - Off"},
	{Code: 5, Key: "AL_HA_EN_Off", Description: "AL HA EN - Off"},
	{Code: 6, Key: "FORCE_CMD_Off", Description: "FORCE CMD - Off"},
	{Code: 7, Key: "Reserve_Off_23", Description: "Reserve - Off"},
	{Code: 8, Key: "Reserve_Off_24", Description: "Reserve - Off"},
	{Code: 9, Key: "AL_LA_Down", Description: "AL LA - Down"},
	{Code: 10, Key: "AL_LW_Down", Description: "AL LW - Down"},
	{Code: 11, Key: "AL_HW_Down", Description: "AL HW - Down"},
	{Code: 12, Key: "AL_HA_Down", Description: "AL HA - Down"},
	{Code: 13, Key: "AL_A_Down", Description: "AL A - Down"},
	{Code: 14, Key: "AL_W_Down", Description: "AL W - Down"},
	{Code: 15, Key: "AL_HEALTH_Down", Description: "AL HEALTH - Down"},
	{Code: 16, Key: "Reserve_Off_32", Description: "Reserve - Off"},
	{Code: 17, Key: "MODE_Auto", Description: "MODE - Auto"},
	{Code: 18, Key: "AL_LA_EN_On", Description: "AL LA EN - On"},
	{Code: 19, Key: "AL_LW_EN_On", Description: "AL LW EN - On"},
	{Code: 20, Key: "AL_HW_EN_On", Description: "AL HW EN - On"},
	{Code: 21, Key: "AL_HA_EN_On", Description: "AL HA EN - On"},
	{Code: 22, Key: "FORCE_CMD_On", Description: "FORCE CMD - On"},
	{Code: 23, Key: "Reserve_On_07", Description: "Reserve - On"},
	{Code: 24, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 25, Key: "AL_LA_Up", Description: "AL LA - Up"},
	{Code: 26, Key: "AL_LW_Up", Description: "AL LW - Up"},
	{Code: 27, Key: "AL_HW_Up", Description: "AL HW - Up"},
	{Code: 28, Key: "AL_HA_Up", Description: "AL HA - Up"},
	{Code: 29, Key: "AL_A_Up", Description: "AL A - Up"},
	{Code: 30, Key: "AL_W_Up", Description: "AL W - Up"},
	{Code: 31, Key: "AL_HEALTH_Up", Description: "AL HEALTH - Up"},
	{Code: 32, Key: "Reserve_On_16", Description: "Reserve - On"},
})

// diCodes covers digital inputs.
var diCodes = newCodeTable("DI", []EventCode{
	{Code: 1, Key: "VALUE_Off", Description: "VALUE - Off"},
	{Code: 2, Key: "VALUE_TRUE_Off", Description: "VALUE TRUE - Off"},
	{Code: 3, Key: "VALUE_FORCED_Off", Description: "VALUE FORCED - Off"},
	{Code: 4, Key: "FORCE_CMD_Off", Description: "FORCE CMD - Off"},
	{Code: 5, Key: "AL_HEALTH_Down", Description: "AL HEALTH - Down"},
	{Code: 6, Key: "Reserve_Off_22", Description: "Reserve - Off"},
	{Code: 7, Key: "Reserve_Off_23", Description: "Reserve - Off"},
	{Code: 8, Key: "Reserve_Off_24", Description: "Reserve - Off"},
	{Code: 9, Key: "Reserve_Off_25", Description: "Reserve - Off"},
	{Code: 10, Key: "Reserve_Off_26", Description: "Reserve - Off"},
	{Code: 11, Key: "Reserve_Off_27", Description: "Reserve - Off"},
	{Code: 12, Key: "Reserve_Off_28", Description: "Reserve - Off"},
	{Code: 13, Key: "Reserve_Off_29", Description: "Reserve - Off"},
	{Code: 14, Key: "Reserve_Off_30", Description: "Reserve - Off"},
	{Code: 15, Key: "Reserve_Off_31", Description: "Reserve - Off"},
	{Code: 16, Key: "Reserve_Off_32", Description: "Reserve - Off"},
	{Code: 17, Key: "VALUE_On", Description: "VALUE - On"},
	{Code: 18, Key: "VALUE_TRUE_On", Description: "VALUE TRUE - On"},
	{Code: 19, Key: "VALUE_FORCED_On", Description: "VALUE FORCED - On"},
	{Code: 20, Key: "FORCE_CMD_On", Description: "FORCE CMD - On"},
	{Code: 21, Key: "AL_HEALTH_Up", Description: "AL HEALTH - Up"},
	{Code: 22, Key: "Reserve_On_06", Description: "Reserve - On"},
	{Code: 23, Key: "Reserve_On_07", Description: "Reserve - On"},
	{Code: 24, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 25, Key: "Reserve_On_09", Description: "Reserve - On"},
	{Code: 26, Key: "Reserve_On_10", Description: "Reserve - On"},
	{Code: 27, Key: "Reserve_On_11", Description: "Reserve - On"},
	{Code: 28, Key: "Reserve_On_12", Description: "Reserve - On"},
	{Code: 29, Key: "Reserve_On_13", Description: "Reserve - On"},
	{Code: 30, Key: "Reserve_On_14", Description: "Reserve - On"},
	{Code: 31, Key: "Reserve_On_15", Description: "Reserve - On"},
	{Code: 32, Key: "Reserve_On_16", Description: "Reserve - On"},
})

// doCodes covers digital outputs.
var doCodes = newCodeTable("DO", []EventCode{
	{Code: 1, Key: "VALUE_TRUE_Off", Description: "VALUE TRUE - Off"},
	{Code: 2, Key: "VALUE_Off", Description: "VALUE - Off"},
	{Code: 3, Key: "VALUE_FORCED_Off", Description: "VALUE FORCED - Off"},
	{Code: 4, Key: "FORCE_CMD_Off", Description: "FORCE CMD - Off"},
	{Code: 5, Key: "AL_HEALTH_Down", Description: "AL HEALTH - Down"},
	{Code: 6, Key: "Reserve_Off_22", Description: "Reserve - Off"},
	{Code: 7, Key: "Reserve_Off_23", Description: "Reserve - Off"},
	{Code: 8, Key: "Reserve_Off_24", Description: "Reserve - Off"},
	{Code: 9, Key: "Reserve_Off_25", Description: "Reserve - Off"},
	{Code: 10, Key: "Reserve_Off_26", Description: "Reserve - Off"},
	{Code: 11, Key: "Reserve_Off_27", Description: "Reserve - Off"},
	{Code: 12, Key: "Reserve_Off_28", Description: "Reserve - Off"},
	{Code: 13, Key: "Reserve_Off_29", Description: "Reserve - Off"},
	{Code: 14, Key: "Reserve_Off_30", Description: "Reserve - Off"},
	{Code: 15, Key: "Reserve_Off_31", Description: "Reserve - Off"},
	{Code: 16, Key: "Reserve_Off_32", Description: "Reserve - Off"},
	{Code: 17, Key: "VALUE_TRUE_On", Description: "VALUE TRUE - On"},
	{Code: 18, Key: "VALUE_On", Description: "VALUE - On"},
	{Code: 19, Key: "VALUE_FORCED_On", Description: "VALUE FORCED - On"},
	{Code: 20, Key: "FORCE_CMD_On", Description: "FORCE CMD - On"},
	{Code: 21, Key: "AL_HEALTH_Up", Description: "AL HEALTH - Up"},
	{Code: 22, Key: "Reserve_On_06", Description: "Reserve - On"},
	{Code: 23, Key: "Reserve_On_07", Description: "Reserve - On"},
	{Code: 24, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 25, Key: "Reserve_On_09", Description: "Reserve - On"},
	{Code: 26, Key: "Reserve_On_10", Description: "Reserve - On"},
	{Code: 27, Key: "Reserve_On_11", Description: "Reserve - On"},
	{Code: 28, Key: "Reserve_On_12", Description: "Reserve - On"},
	{Code: 29, Key: "Reserve_On_13", Description: "Reserve - On"},
	{Code: 30, Key: "Reserve_On_14", Description: "Reserve - On"},
	{Code: 31, Key: "Reserve_On_15", Description: "Reserve - On"},
	{Code: 32, Key: "Reserve_On_16", Description: "Reserve - On"},
})

// atvCodes covers variable frequency drives; two status words packed into 64 codes.
var atvCodes = newCodeTable("ATV", []EventCode{
	{Code: 1, Key: "MODE_Man", Description: "MODE - Man"},
	{Code: 2, Key: "AL_LA_EN_Off", Description: "AL LA EN - Off"},
	{Code: 3, Key: "AL_LW_EN_Off", Description: "AL LW EN - Off"},
	{Code: 4, Key: "AL_HW_EN_Off", Description: "AL HW EN - Off"},
	{Code: 5, Key: "AL_HA_EN_Off", Description: "AL HA EN - Off"},
	{Code: 6, Key: "FORCE_CMD_Off", Description: "FORCE CMD - Off"},
	{Code: 7, Key: "Reserve_Off_39", Description: "Reserve - Off"},
	{Code: 8, Key: "Reserve_Off_40", Description: "Reserve - Off"},
	{Code: 9, Key: "AL_LA_Down", Description: "AL LA - Down"},
	{Code: 10, Key: "AL_LW_Down", Description: "AL LW - Down"},
	{Code: 11, Key: "AL_HW_Down", Description: "AL HW - Down"},
	{Code: 12, Key: "AL_HA_Down", Description: "AL HA - Down"},
	{Code: 13, Key: "AL_A_Down", Description: "AL A - Down"},
	{Code: 14, Key: "AL_W_Down", Description: "AL W - Down"},
	{Code: 15, Key: "AL_HEALTH_Down", Description: "AL HEALTH - Down"},
	{Code: 16, Key: "Reserve_Off_48", Description: "Reserve - Off"},
	{Code: 17, Key: "RUN_Off", Description: "RUN - Off"},
	{Code: 18, Key: "AL_EN_Off", Description: "AL EN - Off"},
	{Code: 19, Key: "AL_Down", Description: "AL - Down"},
	{Code: 20, Key: "START_Down", Description: "START - Down"},
	{Code: 21, Key: "STOP_TYPE_Freewheel", Description: "STOP TYPE - Freewheel"},
	{Code: 22, Key: "Reserve_Off_54", Description: "Reserve - Off"},
	{Code: 23, Key: "Reserve_Off_55", Description: "Reserve - Off"},
	{Code: 24, Key: "Reserve_Off_56", Description: "Reserve - Off"},
	{Code: 25, Key: "Reserve_Off_57", Description: "Reserve - Off"},
	{Code: 26, Key: "Reserve_Off_58", Description: "Reserve - Off"},
	{Code: 27, Key: "Reserve_Off_59", Description: "Reserve - Off"},
	{Code: 28, Key: "Reserve_Off_60", Description: "Reserve - Off"},
	{Code: 29, Key: "Reserve_Off_61", Description: "Reserve - Off"},
	{Code: 30, Key: "Reserve_Off_62", Description: "Reserve - Off"},
	{Code: 31, Key: "Reserve_Off_63", Description: "Reserve - Off"},
	{Code: 32, Key: "Reserve_Off_64", Description: "Reserve - Off"},
	{Code: 33, Key: "MODE_Auto", Description: "MODE - Auto"},
	{Code: 34, Key: "AL_LA_EN_On", Description: "AL LA EN - On"},
	{Code: 35, Key: "AL_LW_EN_On", Description: "AL LW EN - On"},
	{Code: 36, Key: "AL_HW_EN_On", Description: "AL HW EN - On"},
	{Code: 37, Key: "AL_HA_EN_On", Description: "AL HA EN - On"},
	{Code: 38, Key: "FORCE_CMD_On", Description: "FORCE CMD - On"},
	{Code: 39, Key: "Reserve_On_07", Description: "Reserve - On"},
	{Code: 40, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 41, Key: "AL_LA_Up", Description: "AL LA - Up"},
	{Code: 42, Key: "AL_LW_Up", Description: "AL LW - Up"},
	{Code: 43, Key: "AL_HW_Up", Description: "AL HW - Up"},
	{Code: 44, Key: "AL_HA_Up", Description: "AL HA - Up"},
	{Code: 45, Key: "AL_A_Up", Description: "AL A - Up"},
	{Code: 46, Key: "AL_W_Up", Description: "AL W - Up"},
	{Code: 47, Key: "AL_HEALTH_Up", Description: "AL HEALTH - Up"},
	{Code: 48, Key: "Reserve_On_16", Description: "Reserve - On"},
	{Code: 49, Key: "RUN_Up", Description: "RUN - Up"},
	{Code: 50, Key: "AL_EN_On", Description: "AL EN - On"},
	{Code: 51, Key: "AL_Up", Description: "AL - Up"},
	{Code: 52, Key: "START_Up", Description: "START - Up"},
	{Code: 53, Key: "STOP_TYPE_Ramp", Description: "STOP TYPE - Ramp"},
	{Code: 54, Key: "Reserve_On_22", Description: "Reserve - On"},
	{Code: 55, Key: "Reserve_On_23", Description: "Reserve - On"},
	{Code: 56, Key: "Reserve_On_24", Description: "Reserve - On"},
	{Code: 57, Key: "Reserve_On_25", Description: "Reserve - On"},
	{Code: 58, Key: "Reserve_On_26", Description: "Reserve - On"},
	{Code: 59, Key: "Reserve_On_27", Description: "Reserve - On"},
	{Code: 60, Key: "Reserve_On_28", Description: "Reserve - On"},
	{Code: 61, Key: "Reserve_On_29", Description: "Reserve - On"},
	{Code: 62, Key: "Reserve_On_30", Description: "Reserve - On"},
	{Code: 63, Key: "Reserve_On_31", Description: "Reserve - On"},
	{Code: 64, Key: "Reserve_On_32", Description: "Reserve - On"},
})

// vgdCodes covers discrete valves (ValveD).
var vgdCodes = newCodeTable("VGD", []EventCode{
	{Code: 1, Key: "MODE_Man", Description: "MODE - Man"},
	{Code: 2, Key: "CMD_Off", Description: "CMD - Off"},
	{Code: 3, Key: "MAN_Off", Description: "MAN - Off"},
	{Code: 4, Key: "AL_EN_Off", Description: "AL_EN - Off"},
	{Code: 5, Key: "AL_Off", Description: "AL - Off"},
	{Code: 6, Key: "OPEN_AL_Off", Description: "OPEN_AL - Off"},
	{Code: 7, Key: "CLOSE_AL_Off", Description: "CLOSE_AL - Off"},
	{Code: 8, Key: "Reserve_Off_24", Description: "Reserve - Off"},
	{Code: 9, Key: "OPENED_Off", Description: "OPENED - Off"},
	{Code: 10, Key: "CLOSED_Off", Description: "CLOSED - Off"},
	{Code: 11, Key: "Reserve_Off_27", Description: "Reserve - Off"},
	{Code: 12, Key: "Reserve_Off_28", Description: "Reserve - Off"},
	{Code: 13, Key: "Reserve_Off_29", Description: "Reserve - Off"},
	{Code: 14, Key: "NOT_TRIP_DCS_Off", Description: "NOT_TRIP_DCS - Off"},
	{Code: 15, Key: "EMER_OFF_Off", Description: "EMER_OFF - Off"},
	{Code: 16, Key: "NOT_TRIP_EDS_Off", Description: "NOT_TRIP_EDS - Off"},
	{Code: 17, Key: "MODE_Auto", Description: "MODE - Auto"},
	{Code: 18, Key: "CMD_On", Description: "CMD - On"},
	{Code: 19, Key: "MAN_On", Description: "MAN - On"},
	{Code: 20, Key: "AL_EN_On", Description: "AL_EN - On"},
	{Code: 21, Key: "AL_On", Description: "AL - On"},
	{Code: 22, Key: "OPEN_AL_On", Description: "OPEN_AL - On"},
	{Code: 23, Key: "CLOSE_AL_On", Description: "CLOSE_AL - On"},
	{Code: 24, Key: "Reserve_On_08", Description: "Reserve - On"},
	{Code: 25, Key: "OPENED_On", Description: "OPENED - On"},
	{Code: 26, Key: "CLOSED_On", Description: "CLOSED - On"},
	{Code: 27, Key: "Reserve_On_11", Description: "Reserve - On"},
	{Code: 28, Key: "Reserve_On_12", Description: "Reserve - On"},
	{Code: 29, Key: "Reserve_On_13", Description: "Reserve - On"},
	{Code: 30, Key: "NOT_TRIP_DCS_On", Description: "NOT_TRIP_DCS - On"},
	{Code: 31, Key: "EMER_OFF_On", Description: "EMER_OFF - On"},
	{Code: 32, Key: "NOT_TRIP_EDS_On", Description: "NOT_TRIP_EDS - On"},
})

// motorCodes covers motors.
var motorCodes = newCodeTable("Motor", []EventCode{
	{Code: 1, Key: "MODE_Man", Description: "MODE - Man"},
	{Code: 2, Key: "CMD_Off", Description: "CMD - Off"},
	{Code: 3, Key: "MAN_Off", Description: "MAN - Off"},
	{Code: 4, Key: "AL_EN_Off", Description: "AL_EN - Off"},
	{Code: 5, Key: "AL_Off", Description: "AL - Off"},
	{Code: 6, Key: "T_WORK_AL_Off", Description: "T_WORK_AL - Off"},
	{Code: 7, Key: "T_WORK_AL_ACK_Off", Description: "T_WORK_AL_ACK - Off"},
	{Code: 8, Key: "TIME_RESET_Off", Description: "TIME_RESET - Off"},
	{Code: 9, Key: "Reserve_Off_25", Description: "Reserve - Off"},
	{Code: 10, Key: "Reserve_Off_26", Description: "Reserve - Off"},
	{Code: 11, Key: "Reserve_Off_27", Description: "Reserve - Off"},
	{Code: 12, Key: "Reserve_Off_28", Description: "Reserve - Off"},
	{Code: 13, Key: "Reserve_Off_29", Description: "Reserve - Off"},
	{Code: 14, Key: "READY_Off", Description: "READY - Off"},
	{Code: 15, Key: "EMER_OFF_Off", Description: "EMER_OFF - Off"},
	{Code: 16, Key: "NOT_TRIP_EDS_Off", Description: "NOT_TRIP_EDS - Off"},
	{Code: 17, Key: "MODE_Auto", Description: "MODE - Auto"},
	{Code: 18, Key: "CMD_On", Description: "CMD - On"},
	{Code: 19, Key: "MAN_On", Description: "MAN - On"},
	{Code: 20, Key: "AL_EN_On", Description: "AL_EN - On"},
	{Code: 21, Key: "AL_On", Description: "AL - On"},
	{Code: 22, Key: "T_WORK_AL_On", Description: "T_WORK_AL - On"},
	{Code: 23, Key: "T_WORK_AL_ACK_On", Description: "T_WORK_AL_ACK - On"},
	{Code: 24, Key: "TIME_RESET_On", Description: "TIME_RESET - On"},
	{Code: 25, Key: "Reserve_On_09", Description: "Reserve - On"},
	{Code: 26, Key: "Reserve_On_10", Description: "Reserve - On"},
	{Code: 27, Key: "Reserve_On_11", Description: "Reserve - On"},
	{Code: 28, Key: "Reserve_On_12", Description: "Reserve - On"},
	{Code: 29, Key: "Reserve_On_13", Description: "Reserve - On"},
	{Code: 30, Key: "READY_On", Description: "READY - On"},
	{Code: 31, Key: "EMER_OFF_On", Description: "EMER_OFF - On"},
	{Code: 32, Key: "NOT_TRIP_EDS_On", Description: "NOT_TRIP_EDS - On"},
})

// vgaElCodes covers electric valves (ValveA_EL).
var vgaElCodes = newCodeTable("VgaEl", []EventCode{
	{Code: 1, Key: "MODE_Man", Description: "MODE - Man"},
	{Code: 2, Key: "OPEN_CMD_Off", Description: "OPEN_CMD - Off"},
	{Code: 3, Key: "CLOSE_CMD_Off", Description: "CLOSE_CMD - Off"},
	{Code: 4, Key: "AL_EN_Off", Description: "AL_EN - Off"},
	{Code: 5, Key: "AL_Off", Description: "AL - Off"},
	{Code: 6, Key: "OPEN_AL_Off", Description: "OPEN AL - Off"},
	{Code: 7, Key: "CLOSE_AL_Off", Description: "CLOSE AL - Off"},
	{Code: 8, Key: "RESERVE_Off_24", Description: "RESERVE - Off"},
	{Code: 9, Key: "OPENED_Off", Description: "OPENED - Off"},
	{Code: 10, Key: "CLOSED_Off", Description: "CLOSED - Off"},
	{Code: 11, Key: "RESERVE_Off_27", Description: "RESERVE - Off"},
	{Code: 12, Key: "SQ_EN_Off", Description: "SQ_EN - Off"},
	{Code: 13, Key: "ACTUATOR_EN_Off", Description: "ACTUATOR EN - Off"},
	{Code: 14, Key: "RESERVE_Off_30", Description: "RESERVE - Off"},
	{Code: 15, Key: "RESERVE_Off_31", Description: "RESERVE - Off"},
	{Code: 16, Key: "RESERVE_Off_32", Description: "RESERVE - Off"},
	{Code: 17, Key: "MODE_Auto", Description: "MODE - Auto"},
	{Code: 18, Key: "OPEN_CMD_On", Description: "OPEN_CMD - On"},
	{Code: 19, Key: "CLOSE_CMD_On", Description: "CLOSE_CMD - On"},
	{Code: 20, Key: "AL_EN_On", Description: "AL_EN - On"},
	{Code: 21, Key: "AL_On", Description: "AL - On"},
	{Code: 22, Key: "OPEN_AL_On", Description: "OPEN AL - On"},
	{Code: 23, Key: "CLOSE_AL_On", Description: "CLOSE AL - On"},
	{Code: 24, Key: "RESERVE_On_08", Description: "RESERVE - On"},
	{Code: 25, Key: "OPENED_On", Description: "OPENED - On"},
	{Code: 26, Key: "CLOSED_On", Description: "CLOSED - On"},
	{Code: 27, Key: "RESERVE_On_11", Description: "RESERVE - On"},
	{Code: 28, Key: "SQ_EN_On", Description: "SQ_EN - On"},
	{Code: 29, Key: "ACTUATOR_EN_On", Description: "ACTUATOR EN - On"},
	{Code: 30, Key: "RESERVE_On_14", Description: "RESERVE - On"},
	{Code: 31, Key: "RESERVE_On_15", Description: "RESERVE - On"},
	{Code: 32, Key: "RESERVE_On_16", Description: "RESERVE - On"},
})
