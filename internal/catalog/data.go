package catalog

var defaultCategories = []Category{
	{ID: "xarxes", Label: "Xarxes", Color: "#dc2626"},
	{ID: "ia", Label: "IA", Color: "#3b82f6"},
	{ID: "poder", Label: "Poder", Color: "#f59e0b"},
	{ID: "contraimatges", Label: "Contraimatges", Color: "#10b981"},
}

var defaultNodes = []Node{
	{ID: 1, Title: "1", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/1.png"},
	{ID: 2, Title: "2", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/2.png"},
	{ID: 3, Title: "3", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/3.png"},
	{ID: 4, Title: "4", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/4.png"},
	{ID: 5, Title: "5", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/5.png"},
	{ID: 6, Title: "6", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/6.png"},
	{ID: 7, Title: "7", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/7.png"},
	{ID: 8, Title: "8", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/8.png"},
	{ID: 9, Title: "9", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/9.png"},
	{ID: 10, Title: "10", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/10.png"},
	{ID: 11, Title: "11", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/11.png"},
	{ID: 12, Title: "12", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/12.png"},
	{ID: 13, Title: "13", Category: "xarxes", ImageRef: "/XARXES : IDENTITAT CONSTRUÏDA/13.png"},
	{ID: 14, Title: "14", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/16.png"},
	{ID: 15, Title: "15", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/17.png"},
	{ID: 16, Title: "16", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/18.png"},
	{ID: 17, Title: "17", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/19.png"},
	{ID: 18, Title: "18", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/20.png"},
	{ID: 19, Title: "19", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/21.png"},
	{ID: 20, Title: "20", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/22.png"},
	{ID: 21, Title: "21", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/23.png"},
	{ID: 22, Title: "22", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/24.png"},
	{ID: 23, Title: "23", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/25.png"},
	{ID: 24, Title: "24", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/26.png"},
	{ID: 25, Title: "25", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/ia.png"},
	{ID: 26, Title: "26", Category: "ia", ImageRef: "/IA : SIMULACRE : HIPERREALITAT/ia (2).png"},
	{ID: 27, Title: "27", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/27.png"},
	{ID: 28, Title: "28", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/28.png"},
	{ID: 29, Title: "29", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/29.png"},
	{ID: 30, Title: "30", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/30.png"},
	{ID: 31, Title: "31", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/31.png"},
	{ID: 32, Title: "32", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/32.png"},
	{ID: 33, Title: "33", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/33.png"},
	{ID: 34, Title: "34", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/34.png"},
	{ID: 35, Title: "35", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/35.png"},
	{ID: 36, Title: "36", Category: "poder", ImageRef: "/PODER : CONTROL : MIRADA DOMINANT/36.png"},
	{ID: 37, Title: "37", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/37.png"},
	{ID: 38, Title: "38", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/38.png"},
	{ID: 39, Title: "39", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/39.png"},
	{ID: 40, Title: "40", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/40.png"},
	{ID: 41, Title: "41", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/41.png"},
	{ID: 42, Title: "42", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/42.png"},
	{ID: 43, Title: "43", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/43.png"},
	{ID: 44, Title: "44", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/44.png"},
	{ID: 45, Title: "45", Category: "contraimatges", ImageRef: "/CONTRAIMATGES : PENSAMENT : RESISTÈNCIA/45.png"},
}

var defaultLayout = Layout{
	{X: 65, Y: 40},
	{X: 74, Y: 49},
	{X: 83, Y: 54},
	{X: 86, Y: 62},
	{X: 92, Y: 82},
	{X: 60, Y: 59},
	{X: 65, Y: 67},
	{X: 64, Y: 77},
	{X: 63, Y: 92},
	{X: 59, Y: 96},
	{X: 47, Y: 70},
	{X: 42, Y: 77},
	{X: 35, Y: 84},
	{X: 28, Y: 96},
	{X: 18, Y: 96},
	{X: 28, Y: 61},
	{X: 23, Y: 67},
	{X: 14, Y: 71},
	{X: 6, Y: 71},
	{X: 2, Y: 69},
	{X: 18, Y: 50},
	{X: 9, Y: 55},
	{X: 4, Y: 48},
	{X: 2, Y: 39},
	{X: 2, Y: 29},
	{X: 19, Y: 34},
	{X: 15, Y: 26},
	{X: 13, Y: 22},
	{X: 8, Y: 13},
	{X: 10, Y: 2},
	{X: 33, Y: 21},
	{X: 31, Y: 8},
	{X: 34, Y: 5},
	{X: 38, Y: 2},
	{X: 42, Y: 2},
	{X: 46, Y: 16},
	{X: 50, Y: 10},
	{X: 61, Y: 10},
	{X: 69, Y: 4},
	{X: 78, Y: 2},
	{X: 59, Y: 27},
	{X: 70, Y: 22},
	{X: 77, Y: 26},
	{X: 84, Y: 25},
	{X: 84, Y: 42},
}
