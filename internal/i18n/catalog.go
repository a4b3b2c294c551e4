package i18n

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

var english = map[Key]string{
	KeyTitle:             "Photo Sorter",
	KeySource:            "Source Folder:",
	KeyDestination:       "Destination Folder:",
	KeyIncludeSubfolders: "Include Subfolders",
	KeySortingStarted:    "Sorting started...",
	KeySortingCompleted:  "Sorting completed!",
	KeyWarning:           "Warning",
	KeySelectFolders:     "Please select both source and destination folders!",
	KeySuccess:           "Success",
	KeyMoved:             "Moved %s → %s in %s",
	KeyFailed:            "Could not move %s: %v",
	KeyFallback:          "No capture date in %s (%s); using file modification time",
	KeyDestinationBusy:   "Another photosort process is sorting into %s",
	KeyColumnMoved:       "Moved",
	KeyColumnFailed:      "Failed",
	KeyColumnRenamed:     "Renamed",
	KeyColumnFallbacks:   "Date fallbacks",
	KeyColumnSkipped:     "Skipped",
	KeyColumnSize:        "Size",
	KeyColumnDuration:    "Duration",
}

var turkish = map[Key]string{
	KeyTitle:             "Fotoğraf Düzenleyici",
	KeySource:            "Kaynak Klasör:",
	KeyDestination:       "Hedef Klasör:",
	KeyIncludeSubfolders: "Alt Klasörleri Dahil Et",
	KeySortingStarted:    "Sıralama başladı...",
	KeySortingCompleted:  "Sıralama tamamlandı!",
	KeyWarning:           "Uyarı",
	KeySelectFolders:     "Lütfen kaynak ve hedef klasörleri seçin!",
	KeySuccess:           "Başarılı",
	KeyFound:             "Sıralanacak %d dosya bulundu",
	KeyMoved:             "%s → %s taşındı (%s)",
	KeyFailed:            "%s taşınamadı: %v",
	KeyFallback:          "%s için çekim tarihi yok (%s); dosya değiştirilme zamanı kullanılıyor",
	KeyCancelled:         "Sıralama iptal edildi; %d dosya işlenmedi",
	KeyDestinationBusy:   "Başka bir photosort işlemi %s klasörüne sıralama yapıyor",
	KeyFailuresNote:      "%d dosya taşınamadı; ayrıntılar için günlüğe bakın",
	KeyColumnMoved:       "Taşınan",
	KeyColumnFailed:      "Başarısız",
	KeyColumnRenamed:     "Yeniden adlandırılan",
	KeyColumnFallbacks:   "Tarih yedeği",
	KeyColumnSkipped:     "Atlanan",
	KeyColumnSize:        "Boyut",
	KeyColumnDuration:    "Süre",
}

func newCatalog() (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range english {
		if err := b.SetString(language.English, string(key), msg); err != nil {
			return nil, err
		}
	}
	englishPlurals := map[Key]catalog.Message{
		KeyFound: plural.Selectf(1, "%d",
			"=0", "No files to sort",
			"=1", "Found 1 file to sort",
			"other", "Found %d files to sort"),
		KeyCancelled: plural.Selectf(1, "%d",
			"=1", "Sorting cancelled; 1 file was not processed",
			"other", "Sorting cancelled; %d files were not processed"),
		KeyFailuresNote: plural.Selectf(1, "%d",
			"=1", "1 file could not be moved; see the log for details",
			"other", "%d files could not be moved; see the log for details"),
	}
	for key, msg := range englishPlurals {
		if err := b.Set(language.English, string(key), msg); err != nil {
			return nil, err
		}
	}
	for key, msg := range turkish {
		if err := b.SetString(language.Turkish, string(key), msg); err != nil {
			return nil, err
		}
	}
	return b, nil
}
