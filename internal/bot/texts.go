package bot

// All user-facing texts. The bot speaks Russian only.
const (
	textGreeting = "Привет! Я бот для записи к врачам. Нажми кнопку «Поиск» для возможности поиска талона для записи к врачу"

	textAskFirstName  = "Давайте зарегистрируемся. Введите ваше имя:"
	textAskLastName   = "Введите вашу фамилию:"
	textAskPatronymic = "Введите ваше отчество:"
	textAskPolicy     = "Введите номер полиса ОМС (не менее 10 цифр):"
	textAskPassport   = "Введите серию и номер паспорта (например, 1234 567890):"
	textBadName       = "Имя может содержать только буквы. Попробуйте ещё раз:"
	textBadPolicy     = "Номер полиса должен состоять минимум из 10 цифр. Попробуйте ещё раз:"
	textBadPassport   = "Неверный формат паспорта. Пример: 1234 567890. Попробуйте ещё раз:"
	textRegistered    = "Регистрация завершена!"

	textMainMenu       = "Вы в главном меню"
	textChooseCategory = "Выберите категорию специалиста"
	textChooseHospital = "Выберите медицинское учреждение:"
	textChooseDoctor   = "Выберите врача:"
	textChooseDay      = "Выберите дату приёма:"
	textChooseHour     = "Выберите время приёма:"

	textNoCategories   = "Не найдено категорий врачей"
	textNoHospitals    = "Не найдено учреждений с врачами данной категории"
	textNoDoctors      = "Не найдено врачей в данной категории"
	textNoDays         = "Свободных дат для записи нет"
	textNoHours        = "На выбранную дату талонов не осталось"
	textNoAppointments = "У вас нет активных записей"

	textDayFull      = "На эту дату талонов уже нет"
	textSlotTaken    = "Это время уже занято, выберите другое"
	textBooked       = "Вы записаны!"
	textCancelPrompt = "Выберите запись, от которой хотите отказаться:"
	textCancelled    = "Вы отказались от записи"
	textCancelAbort  = "Запись сохранена"

	textNotifyOffer   = "Можно подписаться на уведомление, если талон освободится. Выберите дату:"
	textNotifyCreated = "Готово! Я сообщу, как только появится свободный талон."

	textError = "Что-то пошло не так, попробуйте ещё раз"
	textHint  = "Воспользуйтесь кнопками меню"
)

// Reply-keyboard button labels.
const (
	buttonSearch         = "Поиск"
	buttonMyAppointments = "Мои записи"
	buttonDecline        = "Отказаться от записи"
	buttonBack           = "Назад"
)
