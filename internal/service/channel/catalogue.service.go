package channel

const (
	placeholderVA          = "{va_number}"
	placeholderCompanyCode = "{company_code}"
)

var catalogue = []Channel{
	{ID: "bca_va", Name: "BCA Virtual Account", BankCode: "BCA", Icon: "🏦", Description: "Pay via BCA Virtual Account"},
	{ID: "mandiri_va", Name: "Mandiri Virtual Account", BankCode: "MANDIRI", Icon: "🏦", Description: "Pay via Mandiri Virtual Account"},
	{ID: "bni_va", Name: "BNI Virtual Account", BankCode: "BNI", Icon: "🏦", Description: "Pay via BNI Virtual Account"},
	{ID: "bri_va", Name: "BRI Virtual Account", BankCode: "BRI", Icon: "🏦", Description: "Pay via BRI Virtual Account"},
}

var notes = []string{
	"Selesaikan pembayaran dalam 24 jam",
	"Transfer sesuai dengan jumlah yang tertera",
	"Nomor Virtual Account unik untuk transaksi ini",
	"Simpan bukti pembayaran hingga transaksi selesai",
	"Konfirmasi pembayaran akan diproses dalam 5-10 menit",
}

var guides = map[string][]InstructionGroup{
	"BCA Virtual Account": {
		{
			Title: "ATM BCA",
			Steps: []string{
				"Masukkan kartu ATM BCA & PIN",
				`Pilih menu "Transaksi Lainnya"`,
				`Pilih menu "Transfer"`,
				`Pilih menu "Ke Rek BCA Virtual Account"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi yang tertera di layar",
				`Jika informasi benar, pilih "Ya"`,
			},
		},
		{
			Title: "Mobile Banking BCA (m-BCA)",
			Steps: []string{
				"Buka aplikasi BCA Mobile",
				`Pilih menu "m-BCA"`,
				"Masukkan PIN m-BCA",
				`Pilih menu "m-Transfer"`,
				`Pilih menu "BCA Virtual Account"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Masukkan PIN m-BCA untuk konfirmasi",
			},
		},
		{
			Title: "Internet Banking BCA (KlikBCA)",
			Steps: []string{
				"Login ke KlikBCA",
				`Pilih menu "Transfer Dana"`,
				`Pilih menu "Transfer ke BCA Virtual Account"`,
				"Masukkan nomor Virtual Account: {va_number}",
				`Klik "Lanjutkan"`,
				"Masukkan respon KeyBCA",
				"Periksa informasi yang tertera",
				`Jika informasi benar, klik "Kirim"`,
			},
		},
	},
	"Mandiri Virtual Account": {
		{
			Title: "ATM Mandiri",
			Steps: []string{
				"Masukkan kartu ATM Mandiri & PIN",
				`Pilih menu "Bayar/Beli"`,
				`Pilih menu "Multipayment"`,
				"Masukkan kode perusahaan: {company_code}",
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi yang tertera di layar",
				`Jika informasi benar, pilih "Ya"`,
			},
		},
		{
			Title: "Mandiri Online",
			Steps: []string{
				"Login ke aplikasi Mandiri Online",
				`Pilih menu "Pembayaran"`,
				`Pilih menu "Multipayment"`,
				`Pilih penyedia jasa "Virtual Account"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi pembayaran",
				"Masukkan MPIN untuk konfirmasi",
			},
		},
	},
	"BNI Virtual Account": {
		{
			Title: "ATM BNI",
			Steps: []string{
				"Masukkan kartu ATM BNI & PIN",
				`Pilih menu "Menu Lainnya"`,
				`Pilih menu "Transfer"`,
				`Pilih menu "Virtual Account Billing"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi yang tertera di layar",
				`Jika informasi benar, pilih "Ya"`,
			},
		},
		{
			Title: "BNI Mobile Banking",
			Steps: []string{
				"Buka aplikasi BNI Mobile Banking",
				`Pilih menu "Transfer"`,
				`Pilih menu "Virtual Account Billing"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi pembayaran",
				"Masukkan password transaksi untuk konfirmasi",
			},
		},
	},
	"BRI Virtual Account": {
		{
			Title: "ATM BRI",
			Steps: []string{
				"Masukkan kartu ATM BRI & PIN",
				`Pilih menu "Transaksi Lain"`,
				`Pilih menu "Pembayaran"`,
				`Pilih menu "Lainnya" lalu "BRIVA"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi yang tertera di layar",
				`Jika informasi benar, pilih "Ya"`,
			},
		},
		{
			Title: "BRImo",
			Steps: []string{
				"Buka aplikasi BRImo",
				`Pilih menu "BRIVA"`,
				"Masukkan nomor Virtual Account: {va_number}",
				"Periksa informasi pembayaran",
				"Masukkan PIN untuk konfirmasi",
			},
		},
	},
}
