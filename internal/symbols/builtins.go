package symbols

// DefaultBuiltins are the names the evaluator provides without a
// declaration. Accesses to them are never reported as undeclared.
// The settings file can add more with parser.builtins.
var DefaultBuiltins = []string{
	// функции
	"abs", "acw", "arccos", "arcsin", "arctan", "as_string", "asc", "ascb",
	"assert_equal", "attachconsole", "balloon", "beep", "betweenstr", "brgetdata", "brgetsrc", "brlink",
	"browserbuilder", "browsercontrol", "brsetdata", "btn", "calcarray", "ceil", "chgmoj", "chkbtn",
	"chkclr", "chkimg", "chkmorg", "chknum", "chr", "chrb", "clkitem", "const_as_string",
	"copy", "cos", "cpuuserate", "createform", "createoleobj", "csvclose", "csvopen", "csvread",
	"csvwrite", "ctrlwin", "decode", "deletefile", "deleteini", "dictate", "doscmd", "dropfile",
	"encode", "env", "eval", "exec", "exp", "fclose", "fdelline", "fget",
	"fopen", "format", "fput", "fromjson", "fukidasi", "get_settings", "get_struct_layout", "getactiveoleobj",
	"getallwin", "getctlhnd", "getdir", "getformdata", "getid", "getitem", "getkeystate", "getoleitem",
	"getslctlst", "getslider", "getstr", "gettime", "hndtoid", "idtohnd", "input", "int",
	"isnan", "isunicode", "join", "kbd", "kindofos", "length", "lengthb", "lengths",
	"lengthu", "lengthw", "list_env", "list_module_member", "ln", "lockhard", "lockhardex", "logn",
	"logprint", "match", "mmv", "monitor", "mouseorg", "msgbox", "muscur", "name_of",
	"newre", "oleevent", "parsehtml", "peekcolor", "poff", "popupmenu", "pos", "posacc",
	"power", "powershell", "pwsh", "qsort", "raise", "random", "readini", "recostate",
	"regex", "remoteobjecttype", "replace", "resize", "reverse", "round", "safearray", "saveimg",
	"sckey", "sclose", "sendstr", "sensor", "setclear", "setenv", "setformdata", "sethotkey",
	"setslider", "shexec", "shiftarray", "sin", "slctbox", "sleep", "slice", "sound",
	"speak", "split", "sqrt", "status", "strconv", "tan", "task", "tcplistener",
	"tcpsend", "testre", "tojson", "token", "trim", "type_of", "udpclient", "udprecv",
	"udpsend", "unzip", "val", "vartype", "waittask", "webrequest", "webrequestbuilder", "websocket",
	"wmi", "writeini", "wsrecv", "wssend", "xlactivate", "xlclose", "xlgetdata", "xlopen",
	"xlsetdata", "xlsheet", "zcut", "zip", "zipitems",
	// константы
	"HASH_CASECARE", "HASH_SORT", "HASH_EXISTS", "HASH_REMOVE",
	"HASH_KEY", "HASH_VAL", "HASH_REMOVEALL",
	"GET_ACTIVE_WIN", "GET_FROMPOINT_WIN", "GET_FROMPOINT_OBJ", "GET_THISUWSC_WIN",
	"GET_LOGPRINT_WIN", "GET_BALLOON_WIN", "GET_FUKIDASI_WIN",
	"GET_MENU_HND", "GET_SYSMENU_HND", "ERR_VALUE",
	"ST_ALL", "ST_TITLE", "ST_CLASS", "ST_X", "ST_Y", "ST_WIDTH", "ST_HEIGHT",
	"TRY_ERRLINE", "TRY_ERRMSG",
	"G_TIME_YY", "G_TIME_MM", "G_TIME_DD", "G_TIME_HH", "G_TIME_NN", "G_TIME_SS",
	"G_TIME_ZZ", "G_TIME_WW", "G_TIME_YY2", "G_TIME_MM2", "G_TIME_DD2", "G_TIME_HH2",
	"G_TIME_NN2", "G_TIME_SS2", "G_TIME_ZZ2", "G_TIME_YY4",

	// специальные переменные
	"G_MOUSE_X", "G_MOUSE_Y", "G_SCREEN_W", "G_SCREEN_H", "G_SCREEN_C",
	"THREAD_ID", "IS_GUI_BUILD", "HAS_CHKIMG",
}
