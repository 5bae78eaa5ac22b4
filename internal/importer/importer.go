package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/armen4ik0/shoes-shop-app1/internal/auth"
	"github.com/armen4ik0/shoes-shop-app1/internal/dbstorage"
	"github.com/armen4ik0/shoes-shop-app1/internal/models"
)

// Возможные имена файлов импорта для каждой сущности.
var (
	userFiles        = []string{"user_import.xlsx"}
	pickupPointFiles = []string{"Punkty-vydachi_import.xlsx", "Пункты выдачи_import.xlsx"}
	productFiles     = []string{"Tovar.xlsx"}
	orderFiles       = []string{"Zakaz_import.xlsx", "Заказ_import.xlsx", "orders.xlsx"}
)

// Заголовки колонок в исходных файлах.
const (
	colRole     = "Роль сотрудника"
	colFullName = "ФИО"
	colLogin    = "Логин"
	colPassword = "Пароль"

	colArticle      = "Артикул"
	colProductName  = "Наименование товара"
	colCategory     = "Категория товара"
	colDescription  = "Описание товара"
	colManufacturer = "Производитель"
	colSupplier     = "Поставщик"
	colPrice        = "Цена"
	colUnit         = "Единица измерения"
	colStock        = "Кол-во на складе"
	colDiscount     = "Действующая скидка"
	colPhoto        = "Фото"

	colOrderNumber   = "Номер заказа"
	colOrderArticles = "Артикул заказа"
	colOrderDate     = "Дата заказа"
	colDeliveryDate  = "Дата доставки"
	colPickupAddress = "Адрес пункта выдачи"
	colClientName    = "ФИО авторизированного клиента"
	colPickupCode    = "Код для получения"
	colOrderStatus   = "Статус заказа"
)

// Роли в файле импорта записаны по-русски.
var roleNames = map[string]string{
	"Гость":         models.RoleGuest,
	"Клиент":        models.RoleClient,
	"Менеджер":      models.RoleManager,
	"Администратор": models.RoleAdmin,
}

// Result aggregates the outcome of one entity import.
type Result struct {
	Entity   string
	Total    int
	Imported int
	Skipped  int
	Errors   []string
}

type Importer struct {
	storage *dbstorage.DBStorage
	dataDir string
	logger  *log.Logger
}

func New(storage *dbstorage.DBStorage, dataDir string, logger *log.Logger) *Importer {
	return &Importer{
		storage: storage,
		dataDir: dataDir,
		logger:  logger,
	}
}

// ImportAll loads the four spreadsheets in dependency order: orders need
// pickup points to exist first. Missing files and bad rows are logged and
// skipped, a re-run never changes already imported rows.
func (im *Importer) ImportAll(ctx context.Context) []Result {
	results := []Result{
		im.ImportUsers(ctx),
		im.ImportPickupPoints(ctx),
		im.ImportProducts(ctx),
		im.ImportOrders(ctx),
	}
	for _, res := range results {
		im.logger.Printf("импорт %s: всего %d, добавлено %d, пропущено %d, ошибок %d",
			res.Entity, res.Total, res.Imported, res.Skipped, len(res.Errors))
	}
	return results
}

// ImportUsers loads users keyed by login. Passwords are stored hashed, the
// source file carries them in the clear.
func (im *Importer) ImportUsers(ctx context.Context) Result {
	res := Result{Entity: "пользователи"}
	sh, ok := im.openSource(userFiles, true, &res)
	if !ok {
		return res
	}

	res.Total = len(sh.rows)
	for i, row := range sh.rows {
		user := models.User{
			Role:     mapRole(sh.cell(row, colRole)),
			FullName: sh.cell(row, colFullName),
			Login:    sh.cell(row, colLogin),
			Password: auth.HashPassword(sh.cell(row, colPassword)),
		}
		if user.Login == "" {
			im.rowError(&res, i, errors.New("пустой логин"))
			continue
		}
		created, err := im.storage.ImportUser(ctx, user)
		if err != nil {
			im.rowError(&res, i, err)
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res
}

// ImportPickupPoints loads the address list. The source file has no header
// row, every non-empty first cell is an address.
func (im *Importer) ImportPickupPoints(ctx context.Context) Result {
	res := Result{Entity: "пункты выдачи"}
	sh, ok := im.openSource(pickupPointFiles, false, &res)
	if !ok {
		return res
	}

	res.Total = len(sh.rows)
	for i, row := range sh.rows {
		if len(row) == 0 || row[0] == "" {
			res.Skipped++
			continue
		}
		created, err := im.storage.ImportPickupPoint(ctx, models.PickupPoint{Address: row[0]})
		if err != nil {
			im.rowError(&res, i, err)
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res
}

// ImportProducts loads products keyed by article.
func (im *Importer) ImportProducts(ctx context.Context) Result {
	res := Result{Entity: "товары"}
	sh, ok := im.openSource(productFiles, true, &res)
	if !ok {
		return res
	}

	res.Total = len(sh.rows)
	for i, row := range sh.rows {
		price, err := parseDecimal(sh.cell(row, colPrice))
		if err != nil {
			im.rowError(&res, i, fmt.Errorf("цена: %w", err))
			continue
		}
		stock, err := parseInt(sh.cell(row, colStock))
		if err != nil {
			im.rowError(&res, i, fmt.Errorf("количество: %w", err))
			continue
		}
		discount, err := parseInt(sh.cell(row, colDiscount))
		if err != nil {
			im.rowError(&res, i, fmt.Errorf("скидка: %w", err))
			continue
		}

		photoPath := ""
		if photo := sh.cell(row, colPhoto); photo != "" {
			photoPath = filepath.Join(im.dataDir, "product_images", photo)
		}

		product := models.Product{
			Article:      sh.cell(row, colArticle),
			Name:         sh.cell(row, colProductName),
			Category:     sh.cell(row, colCategory),
			Description:  sh.cell(row, colDescription),
			Manufacturer: sh.cell(row, colManufacturer),
			Supplier:     sh.cell(row, colSupplier),
			Price:        price,
			Unit:         sh.cell(row, colUnit),
			Stock:        stock,
			Discount:     discount,
			PhotoPath:    photoPath,
		}
		if product.Article == "" {
			im.rowError(&res, i, errors.New("пустой артикул"))
			continue
		}
		created, err := im.storage.ImportProduct(ctx, product)
		if err != nil {
			im.rowError(&res, i, err)
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res
}

// ImportOrders loads orders keyed by number. The pickup point is resolved
// by the trimmed address, an unknown address leaves the reference null and
// does not abort the batch.
func (im *Importer) ImportOrders(ctx context.Context) Result {
	res := Result{Entity: "заказы"}
	sh, ok := im.openSource(orderFiles, true, &res)
	if !ok {
		return res
	}

	res.Total = len(sh.rows)
	for i, row := range sh.rows {
		number, err := parseInt(sh.cell(row, colOrderNumber))
		if err != nil {
			im.rowError(&res, i, fmt.Errorf("номер заказа: %w", err))
			continue
		}

		var pickupPointID *uint
		if addr := sh.cell(row, colPickupAddress); addr != "" {
			point, err := im.storage.FindPickupPointByAddress(ctx, addr)
			switch {
			case errors.Is(err, dbstorage.ErrPickupPointNotFound):
				im.logger.Printf("пункт выдачи не найден по адресу: %q", addr)
			case err != nil:
				im.logger.Printf("ошибка поиска пункта выдачи %q: %v", addr, err)
			default:
				pickupPointID = &point.ID
			}
		}

		order := models.Order{
			Number:        number,
			Articles:      sh.cell(row, colOrderArticles),
			OrderDate:     sh.cell(row, colOrderDate),
			DeliveryDate:  sh.cell(row, colDeliveryDate),
			PickupPointID: pickupPointID,
			ClientName:    sh.cell(row, colClientName),
			PickupCode:    sh.cell(row, colPickupCode),
			Status:        sh.cell(row, colOrderStatus),
		}
		created, err := im.storage.ImportOrder(ctx, order)
		if err != nil {
			im.rowError(&res, i, err)
			continue
		}
		if created {
			res.Imported++
		} else {
			res.Skipped++
		}
	}
	return res
}

// openSource tries the candidate file names in order. A missing source is a
// warning, the whole entity is skipped then.
func (im *Importer) openSource(names []string, withHeader bool, res *Result) (*sheet, bool) {
	path, found := im.findSource(names)
	if !found {
		im.logger.Printf("файл импорта не найден (проверены: %v), пропускаю %s", names, res.Entity)
		return nil, false
	}
	sh, err := openSheet(path, withHeader)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("чтение %s: %v", path, err))
		im.logger.Printf("ошибка чтения %s: %v", path, err)
		return nil, false
	}
	return sh, true
}

func (im *Importer) findSource(names []string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(im.dataDir, name)
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// rowError записывает ошибку строки и продолжает пакет; i — индекс строки
// данных, в файле это строка i+2 (первая занята заголовком).
func (im *Importer) rowError(res *Result, i int, err error) {
	msg := fmt.Sprintf("строка %d: %v", i+2, err)
	res.Errors = append(res.Errors, msg)
	im.logger.Printf("импорт %s, %s", res.Entity, msg)
}

func mapRole(raw string) string {
	if role, ok := roleNames[raw]; ok {
		return role
	}
	return raw
}
