package codon

// NCBI genetic code tables, 64 residues per table in TCAG codon order:
//
//	Base 1  TTTTTTTTTTTTTTTTCCCCCCCCCCCCCCCCAAAAAAAAAAAAAAAAGGGGGGGGGGGGGGGG
//	Base 2  TTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGGTTTTCCCCAAAAGGGG
//	Base 3  TCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAGTCAG
var aminoAcids = map[string]string{
	"1":  "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"2":  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG",
	"3":  "FFLLSSSSYY**CCWWTTTTPPPPHHQQRRRRIIMMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"4":  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"5":  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSSSVVVVAAAADDEEGGGG",
	"6":  "FFLLSSSSYYQQCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"9":  "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	"10": "FFLLSSSSYY**CCCWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"11": "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"12": "FFLLSSSSYY**CC*WLLLSPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"13": "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSSGGVVVVAAAADDEEGGGG",
	"14": "FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	"15": "FFLLSSSSYY*QCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"16": "FFLLSSSSYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"21": "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNNKSSSSVVVVAAAADDEEGGGG",
	"22": "FFLLSS*SYY*LCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"23": "FF*LSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"24": "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
	"25": "FFLLSSSSYY**CCGWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"26": "FFLLSSSSYY**CC*WLLLAPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"27": "FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"28": "FFLLSSSSYYQQCCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"29": "FFLLSSSSYYYYCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"30": "FFLLSSSSYYEECC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"31": "FFLLSSSSYYEECCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"32": "FFLLSSSSYY*WCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG",
	"33": "FFLLSSSSYYY*CCWWLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSSKVVVVAAAADDEEGGGG",
}

// Start-codon companions to aminoAcids: 'M' marks a codon that can
// initiate translation in that table, '-' and '*' cannot.
var startCodons = map[string]string{
	"1":  "---M------**--*----M---------------M----------------------------",
	"2":  "----------**--------------------MMMM----------**---M------------",
	"3":  "----------**----------------------MM---------------M------------",
	"4":  "--MM------**-------M------------MMMM---------------M------------",
	"5":  "---M------**--------------------MMMM---------------M------------",
	"6":  "--------------*--------------------M----------------------------",
	"9":  "----------**-----------------------M---------------M------------",
	"10": "----------**-----------------------M----------------------------",
	"11": "---M------**--*----M------------MMMM---------------M------------",
	"12": "----------**--*----M---------------M----------------------------",
	"13": "---M------**----------------------MM---------------M------------",
	"14": "-----------*-----------------------M----------------------------",
	"15": "----------*---*--------------------M----------------------------",
	"16": "----------*---*--------------------M----------------------------",
	"21": "----------**-----------------------M---------------M------------",
	"22": "------*---*---*--------------------M----------------------------",
	"23": "--*-------**--*-----------------M--M---------------M------------",
	"24": "---M------**-------M---------------M---------------M------------",
	"25": "---M------**-----------------------M---------------M------------",
	"26": "----------**--*----M---------------M----------------------------",
	"27": "--------------*--------------------M----------------------------",
	"28": "----------**--*--------------------M----------------------------",
	"29": "--------------*--------------------M----------------------------",
	"30": "--------------*--------------------M----------------------------",
	"31": "----------**-----------------------M----------------------------",
	"32": "---M------*---*----M------------MMMM---------------M------------",
	"33": "---M-------*-------M---------------M---------------M------------",
}

var tableNames = map[string]string{
	"1":  "Standard",
	"2":  "Vertebrate Mitochondrial",
	"3":  "Yeast Mitochondrial",
	"4":  "Mold Mitochondrial; Protozoan Mitochondrial; Coelenterate Mitochondrial; Mycoplasma; Spiroplasma",
	"5":  "Invertebrate Mitochondrial",
	"6":  "Ciliate Nuclear; Dasycladacean Nuclear; Hexamita Nuclear",
	"9":  "Echinoderm Mitochondrial; Flatworm Mitochondrial",
	"10": "Euplotid Nuclear",
	"11": "Bacterial, Archaeal and Plant Plastid",
	"12": "Alternative Yeast Nuclear",
	"13": "Ascidian Mitochondrial",
	"14": "Alternative Flatworm Mitochondrial",
	"15": "Blepharisma Macronuclear",
	"16": "Chlorophycean Mitochondrial",
	"21": "Trematode Mitochondrial",
	"22": "Scenedesmus obliquus Mitochondrial",
	"23": "Thraustochytrium Mitochondrial",
	"24": "Rhabdopleuridae Mitochondrial",
	"25": "Candidate Division SR1 and Gracilibacteria",
	"26": "Pachysolen tannophilus Nuclear",
	"27": "Karyorelict Nuclear",
	"28": "Condylostoma Nuclear",
	"29": "Mesodinium Nuclear",
	"30": "Peritrich Nuclear",
	"31": "Blastocrithidia Nuclear",
	"32": "Balanophoraceae Plastid",
	"33": "Cephalodiscidae Mitochondrial",
}
